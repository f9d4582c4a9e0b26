package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	original := cardstencil.GetGlobalConfig()
	t.Cleanup(func() { cardstencil.SetGlobalConfig(original) })

	var out bytes.Buffer
	cmd := NewDefaultCardstencilCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cardstencil version "+cardstencil.Version+"\n", out)
}

func TestRenderCmd(t *testing.T) {
	yamlData := writeFile(t, "note.yml", `
Front: Capital of France?
Text: "{{c1::Paris::capital}} is in {{c2::France}}"
Tags:
- name: geo
- name: europe
`)
	jsonData := writeFile(t, "note.json", `{"Front": "Capital?", "Tags": [{"name": "a"}]}`)
	tomlData := writeFile(t, "note.toml", `
Front = "From TOML"

[[Tags]]
name = "t1"

[[Tags]]
name = "t2"
`)
	templateFile := writeFile(t, "back.txt", "{{Front}}|{{#Tags}}{{name}};{{/Tags}}")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "inline template and field",
			args: []string{"render", "--template-text", "Q: {{x}}", "--field", "x=1"},
			want: "Q: 1\n",
		},
		{
			name: "yaml data",
			args: []string{"render", "-t", templateFile, "-d", yamlData},
			want: "Capital of France?|geo;europe;\n",
		},
		{
			name: "json data",
			args: []string{"render", "-t", templateFile, "-d", jsonData},
			want: "Capital?|a;\n",
		},
		{
			name: "toml data",
			args: []string{"render", "-t", templateFile, "-d", tomlData},
			want: "From TOML|t1;t2;\n",
		},
		{
			name: "field overrides data file",
			args: []string{"render", "-t", templateFile, "-d", jsonData, "--field", "Front=Override"},
			want: "Override|a;\n",
		},
		{
			name: "cloze tag",
			args: []string{"render", "--template-text", "{{cq:1:Text}}", "-d", yamlData},
			want: "<span class=cloze>[...(capital)]</span> is in France\n",
		},
		{
			name: "invalid template without strict",
			args: []string{"render", "--template-text", "{{=x=}}"},
			want: cardstencil.InvalidTemplateOutput + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	errorCases := []struct {
		name string
		args []string
	}{
		{name: "strict syntax error", args: []string{"render", "--strict", "--template-text", "{{=x=}}"}},
		{name: "unsupported sigil", args: []string{"render", "--template-text", "{{&x}}"}},
		{name: "no template", args: []string{"render"}},
		{name: "two templates", args: []string{"render", "-t", templateFile, "--template-text", "x"}},
		{name: "malformed field", args: []string{"render", "--template-text", "x", "--field", "novalue"}},
		{name: "missing data file", args: []string{"render", "--template-text", "x", "-d", filepath.Join(t.TempDir(), "none.yml")}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestClozeCmd(t *testing.T) {
	text := "{{c1::Paris::capital}} is in {{c2::France}}"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "question",
			args: []string{"cloze", "--text", text},
			want: "<span class=cloze>[...(capital)]</span> is in France\n",
		},
		{
			name: "context",
			args: []string{"cloze", "--text", text, "--ord", "2", "--mode", "actx"},
			want: "Paris is in <span class=cloze>France</span>\n",
		},
		{
			name: "answer from file",
			args: []string{"cloze", "-f", writeFile(t, "field.txt", text+"\n"), "--mode", "a"},
			want: "<span class=cloze>Paris</span>\n",
		},
		{
			name: "list ordinals",
			args: []string{"cloze", "--text", text, "--list"},
			want: "1\n2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("bad mode", func(t *testing.T) {
		_, err := runCmd(t, "cloze", "--text", text, "--mode", "ctx")
		assert.Error(t, err)
	})

	t.Run("bad ordinal", func(t *testing.T) {
		_, err := runCmd(t, "cloze", "--text", text, "--ord", "0")
		assert.Error(t, err)
	})
}

func TestValidateCmd(t *testing.T) {
	out, err := runCmd(t, "validate", "--template-text", "{{#a}}{{b}}{{/a}}")
	require.NoError(t, err)
	assert.Equal(t, "Succeeded\n", out)

	out, err = runCmd(t, "validate", "--template-text", "{{#a}}{{&b}}")
	require.Error(t, err)
	assert.Contains(t, out, "error UNSUPPORTED_SIGIL {{&b}}")
	assert.Contains(t, out, "error UNCLOSED_SECTION {{#a}}")
	assert.NotContains(t, out, "Succeeded")
}

func TestRefsCmd(t *testing.T) {
	out, err := runCmd(t, "refs", "--template-text", "{{Front}} {{cq:1:Text}} {{#Tags}}{{name}}{{/Tags}}")
	require.NoError(t, err)
	assert.Equal(t, "Front\nText\nTags\nname\n", out)
}

func TestGlobalFlags(t *testing.T) {
	configPath := writeFile(t, "cardstencil.toml", `
cloze_class = "from-file"
`)

	out, err := runCmd(t, "--config", configPath, "cloze", "--text", "{{c1::x}}", "--mode", "actx")
	require.NoError(t, err)
	assert.Equal(t, "<span class=from-file>x</span>\n", out)

	_, err = runCmd(t, "--log-level", "loud", "version")
	assert.Error(t, err)

	badConfig := writeFile(t, "bad.toml", `requires = "> 99"`)
	_, err = runCmd(t, "--config", badConfig, "version")
	assert.Error(t, err)
}
