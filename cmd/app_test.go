package cmd

import (
	"bytes"
	"strings"
	"testing"

	"invoice-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput(t *testing.T) {
	outcome := &reconcile.Outcome{
		IsMismatch: true,
		VendorName: "Acme",
		Issues:     []reconcile.Issue{{Issue: reconcile.IssueItemNotFound, Item: "Widget"}},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, formatJSON, outcome))
		assert.JSONEq(t, `{
			"is_mismatch": true,
			"vendor_name": "Acme",
			"mismatch_data": [{"Issue": "Item not found in PO", "Item": "Widget"}]
		}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "YAML", outcome))
		assert.Contains(t, buf.String(), "is_mismatch: true")
		assert.Contains(t, buf.String(), "vendor_name: Acme")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, writeOutput(&bytes.Buffer{}, "xml", outcome))
	})
}

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{"typed yes", "yes\n", false, true},
		{"typed yes without newline", "yes", false, true},
		{"typed no", "no\n", false, false},
		{"empty input", "", false, false},
		{"flag", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yesConfirm = tt.yes
			defer func() { yesConfirm = false }()

			var out bytes.Buffer
			got := confirmDestructiveAction(strings.NewReader(tt.input), &out, "dropping tables")
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "validate", "schema", "logs", "db", "storage"} {
		assert.True(t, names[want], want)
	}

	sub := map[string]bool{}
	for _, c := range dbCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.Equal(t, map[string]bool{"migrate": true, "clear": true, "drop": true, "check": true}, sub)
}

func TestSchemaCommand(t *testing.T) {
	var buf bytes.Buffer
	schemaCmd.SetOut(&buf)
	defer schemaCmd.SetOut(nil)

	require.NoError(t, schemaCmd.RunE(schemaCmd, []string{"po"}))
	assert.Contains(t, buf.String(), "po_number")

	assert.Error(t, schemaCmd.RunE(schemaCmd, []string{"receipt"}))
}
