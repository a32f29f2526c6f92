package credentials

import (
	"encoding/json"
	"net/url"
	"time"
)

const (
	prefix = "credential:"

	prefixByKey     = prefix + "key:"
	prefixByProject = prefix + "project:"
)

type entryModel struct {
	Project        string    `json:"project"`
	URLPrefix      string    `json:"url_prefix"`
	Username       string    `json:"username"`
	Password       string    `json:"password"`
	PrivateKeyPath string    `json:"private_key_path"`
	Passphrase     string    `json:"passphrase"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newEntryModel(entry Entry) *entryModel {
	return &entryModel{
		Project:        entry.Project,
		URLPrefix:      entry.URLPrefix,
		Username:       entry.Credentials.Username,
		Password:       entry.Credentials.Password,
		PrivateKeyPath: entry.Credentials.PrivateKeyPath,
		Passphrase:     entry.Credentials.Passphrase,
		UpdatedAt:      time.Now(),
	}
}

func newEntry(model *entryModel) Entry {
	return Entry{
		Project:   model.Project,
		URLPrefix: model.URLPrefix,
		Credentials: Credentials{
			Username:       model.Username,
			Password:       model.Password,
			PrivateKeyPath: model.PrivateKeyPath,
			Passphrase:     model.Passphrase,
		},
	}
}

func storageKey(project, urlPrefix string) string {
	return prefixByKey + url.QueryEscape(project) + ":" + url.QueryEscape(urlPrefix)
}

// StorageKey implements badgerfx.Entity.
func (m *entryModel) StorageKey() string {
	return storageKey(m.Project, m.URLPrefix)
}

// StorageIndexes implements badgerfx.Entity.
func (m *entryModel) StorageIndexes() []string {
	return []string{prefixByProject + url.QueryEscape(m.Project) + ":" + url.QueryEscape(m.URLPrefix)}
}

// MarshalStorage implements badgerfx.Entity.
func (m *entryModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStorage implements badgerfx.Entity.
func (m *entryModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}
