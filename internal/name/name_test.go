package name

import (
	"testing"
	"time"

	"github.com/raphi011/pix/internal/params"
	"github.com/raphi011/pix/internal/template"
)

func resolve(t *testing.T, spec, tree string) []template.Resolved {
	t.Helper()

	v, err := params.ParseBytes([]byte(tree))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	now := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	return template.Resolve(template.ParseList(spec), v, now)
}

func TestBase(t *testing.T) {
	t.Parallel()

	sampler := `{"1": {"inputs": {"sampler_name": "euler", "steps": 20}}}`

	tests := []struct {
		name      string
		spec      string
		tree      string
		prefix    string
		delimiter string
		want      string
	}{
		{
			name:      "prefix and two literals",
			spec:      "sampler_name, steps",
			tree:      sampler,
			prefix:    "Test",
			delimiter: "_",
			want:      "Test_euler_20",
		},
		{
			name:      "unresolved token contributes nothing",
			spec:      "sampler_name, missing, steps",
			tree:      sampler,
			prefix:    "Test",
			delimiter: "_",
			want:      "Test_euler_20",
		},
		{
			name:      "no prefix starts without delimiter",
			spec:      "sampler_name",
			tree:      sampler,
			delimiter: "-",
			want:      "euler",
		},
		{
			name:      "model extension trimmed",
			spec:      "ckpt_name",
			tree:      `{"4": {"inputs": {"ckpt_name": "sd15.safetensors"}}}`,
			delimiter: "-",
			want:      "sd15",
		},
		{
			name:      "forbidden characters replaced",
			spec:      "sampler_name",
			tree:      `{"1": {"inputs": {"sampler_name": "eu<le>r?"}}}`,
			delimiter: "-",
			want:      "eu_le_r",
		},
		{
			name:      "date token",
			spec:      "%Y%m%d",
			tree:      `{}`,
			prefix:    "img",
			delimiter: "-",
			want:      "img-20240307",
		},
		{
			name:      "marker makes a subpath in the base",
			spec:      "./batch, steps",
			tree:      sampler,
			prefix:    "out",
			delimiter: "-",
			want:      "out/batch-20",
		},
		{
			name:      "value after trailing slash needs no delimiter",
			spec:      "steps",
			tree:      sampler,
			prefix:    "out/",
			delimiter: "-",
			want:      "out/20",
		},
		{
			name:      "all unresolved falls back to default",
			spec:      "missing, also_missing",
			tree:      sampler,
			delimiter: "-",
			want:      DefaultBase,
		},
		{
			name:      "empty template keeps prefix",
			spec:      "",
			tree:      sampler,
			prefix:    "img",
			delimiter: "-",
			want:      "img",
		},
		{
			name:      "edge junk trimmed",
			spec:      "",
			tree:      sampler,
			prefix:    "-.img.-",
			delimiter: "-",
			want:      "img",
		},
		{
			name:      "only junk falls back to default",
			spec:      "",
			tree:      sampler,
			prefix:    "--",
			delimiter: "-",
			want:      DefaultBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Base(resolve(t, tt.spec, tt.tree), tt.prefix, tt.delimiter)
			if got != tt.want {
				t.Errorf("Base(%q, prefix=%q) = %q, want %q", tt.spec, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestFolder(t *testing.T) {
	t.Parallel()

	tree := `{
		"4": {"inputs": {"ckpt_name": "dreamshaper.safetensors"}},
		"5": {"inputs": {"sampler_name": "euler", "steps": 20}}
	}`

	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      string
	}{
		{name: "single literal", spec: "ckpt_name", delimiter: "-", want: "dreamshaper"},
		{name: "literal plus subfolder marker", spec: "ckpt_name, ./sampler_name", delimiter: "-", want: "dreamshaper/sampler_name"},
		{name: "date plus marker", spec: "%Y-%m-%d, ./batch", delimiter: "-", want: "2024-03-07/batch"},
		{name: "leading marker has no leading slash", spec: "./archive, steps", delimiter: "-", want: "archive-20"},
		{name: "empty spec means no subfolder", spec: "", delimiter: "-", want: ""},
		{name: "unresolved spec means no subfolder", spec: "missing", delimiter: "-", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Folder(resolve(t, tt.spec, tree), tt.delimiter)
			if got != tt.want {
				t.Errorf("Folder(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		base      string
		counter   int
		digits    int
		pos       Position
		delimiter string
		ext       string
		want      string
	}{
		{name: "counter last", base: "Test_euler_20", counter: 1, digits: 4, pos: PositionLast, delimiter: "_", ext: ".webp", want: "Test_euler_20_0001.webp"},
		{name: "counter first", base: "img", counter: 7, digits: 4, pos: PositionFirst, delimiter: "-", ext: ".png", want: "0007-img.png"},
		{name: "counter wider than digits", base: "img", counter: 12345, digits: 4, pos: PositionLast, delimiter: "-", ext: ".png", want: "img-12345.png"},
		{name: "two digits", base: "img", counter: 3, digits: 2, pos: PositionLast, delimiter: "-", ext: ".jpg", want: "img-03.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Filename(tt.base, tt.counter, tt.digits, tt.pos, tt.delimiter, tt.ext)
			if got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	if got, err := ParsePosition("first"); err != nil || got != PositionFirst {
		t.Errorf("ParsePosition(first) = %v, %v", got, err)
	}
	if got, err := ParsePosition("last"); err != nil || got != PositionLast {
		t.Errorf("ParsePosition(last) = %v, %v", got, err)
	}
	if _, err := ParsePosition("middle"); err == nil {
		t.Error("ParsePosition(middle) should fail")
	}
}
