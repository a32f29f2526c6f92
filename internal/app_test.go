package internal

import (
	"testing"

	"go.uber.org/fx"
)

func TestModuleGraphs(t *testing.T) {
	tests := []struct {
		name    string
		modules []fx.Option
	}{
		{"worker", concat(coreModules(), commitModules(), workerModules())},
		{"perform", concat(coreModules(), commitModules(), publishModules())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fx.ValidateApp(tt.modules...); err != nil {
				t.Fatalf("invalid dependency graph: %v", err)
			}
		})
	}
}
