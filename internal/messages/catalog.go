// Package messages holds the fixed catalog of build-log lines written by the
// commit step. Every line an operator can see in a build log comes from here.
package messages

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a catalog entry.
type Key string

const (
	KeyCommitted         Key = "svncommit.committed"
	KeyNothingToCommit   Key = "svncommit.nothing_to_commit"
	KeyCommitFailed      Key = "svncommit.commit_failed"
	KeyUnsuccessfulBuild Key = "svncommit.unsuccessful_build"
	KeyWrongKind         Key = "svncommit.wrong_kind"
	KeyNoAuthProvider    Key = "svncommit.no_auth_provider"
	KeyBadTemplate       Key = "svncommit.bad_template"
)

var english = map[Key]string{
	KeyCommitted:         "Committed revision %s of %s",
	KeyNothingToCommit:   "Nothing to commit in %s",
	KeyCommitFailed:      "Commit failed: %s",
	KeyUnsuccessfulBuild: "Build was not successful, skipping commit",
	KeyWrongKind:         "Project is not configured for %s (found %s), skipping commit",
	KeyNoAuthProvider:    "No authentication provider found for %s",
	KeyBadTemplate:       "Malformed commit comment template: %s",
}

var printer = newPrinter()

func newPrinter() *message.Printer {
	builder := catalog.NewBuilder()
	for key, msg := range english {
		if err := builder.SetString(language.English, string(key), msg); err != nil {
			panic(err)
		}
	}

	return message.NewPrinter(language.English, message.Catalog(builder))
}

// Keys lists every catalog entry.
func Keys() []Key {
	return []Key{
		KeyCommitted,
		KeyNothingToCommit,
		KeyCommitFailed,
		KeyUnsuccessfulBuild,
		KeyWrongKind,
		KeyNoAuthProvider,
		KeyBadTemplate,
	}
}

func format(key Key, args ...any) string {
	for i, arg := range args {
		if text, ok := arg.(string); ok {
			args[i] = singleLine(text)
		}
	}
	return printer.Sprintf(string(key), args...)
}

// singleLine folds multi-line text into one line, joining the non-blank
// lines with "; ".
func singleLine(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}

	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			parts = append(parts, strings.Join(fields, " "))
		}
	}

	return strings.Join(parts, "; ")
}

// Committed reports a new revision. The revision is passed preformatted so
// the printer does not apply digit grouping.
func Committed(revision int64, location string) string {
	return format(KeyCommitted, strconv.FormatInt(revision, 10), location)
}

func NothingToCommit(location string) string {
	return format(KeyNothingToCommit, location)
}

func CommitFailed(detail string) string {
	return format(KeyCommitFailed, detail)
}

func UnsuccessfulBuild() string {
	return format(KeyUnsuccessfulBuild)
}

func WrongKind(expected, actual string) string {
	return format(KeyWrongKind, expected, actual)
}

func NoAuthProvider(location string) string {
	return format(KeyNoAuthProvider, location)
}

func BadTemplate(detail string) string {
	return format(KeyBadTemplate, detail)
}
