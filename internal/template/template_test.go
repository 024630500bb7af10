package template

import (
	"testing"
	"time"

	"github.com/raphi011/pix/internal/params"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
		want []Token
	}{
		{
			name: "mixed template",
			spec: "sampler_name, cfg, steps, %F %H-%M-%S",
			want: []Token{
				{Raw: "sampler_name", Kind: KindLiteral},
				{Raw: "cfg", Kind: KindLiteral},
				{Raw: "steps", Kind: KindLiteral},
				{Raw: "%F %H-%M-%S", Kind: KindDate},
			},
		},
		{
			name: "node reference",
			spec: "5.seed",
			want: []Token{{Raw: "5.seed", Kind: KindNodeRef, NodeID: "5", Input: "seed"}},
		},
		{
			name: "numeric input is a node reference",
			spec: "1.5",
			want: []Token{{Raw: "1.5", Kind: KindNodeRef, NodeID: "1", Input: "5"}},
		},
		{
			name: "double dotted id stays literal",
			spec: "5.6.seed",
			want: []Token{{Raw: "5.6.seed", Kind: KindLiteral}},
		},
		{
			name: "version-like literal",
			spec: "v1.2",
			want: []Token{{Raw: "v1.2", Kind: KindLiteral}},
		},
		{
			name: "subfolder marker",
			spec: "./ckpt_name",
			want: []Token{{Raw: "./ckpt_name", Kind: KindPathMarker, Segment: "ckpt_name"}},
		},
		{
			name: "parent marker",
			spec: "../archive",
			want: []Token{{Raw: "../archive", Kind: KindPathMarker, Segment: "archive"}},
		},
		{
			name: "date beats marker-looking text",
			spec: "%Y-%m-%d",
			want: []Token{{Raw: "%Y-%m-%d", Kind: KindDate}},
		},
		{
			name: "empty entries dropped",
			spec: " , sampler_name ,, ",
			want: []Token{{Raw: "sampler_name", Kind: KindLiteral}},
		},
		{
			name: "empty template",
			spec: "",
			want: []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseList(tt.spec)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseList(%q) = %d tokens, want %d", tt.spec, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStrftime(t *testing.T) {
	t.Parallel()

	// A Thursday in a leap year.
	at := time.Date(2024, time.March, 7, 9, 5, 3, 123456789, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"%Y", "2024"},
		{"%y", "24"},
		{"%m", "03"},
		{"%d", "07"},
		{"%e", " 7"},
		{"%H", "09"},
		{"%I", "09"},
		{"%M", "05"},
		{"%S", "03"},
		{"%f", "123456"},
		{"%p", "AM"},
		{"%a", "Thu"},
		{"%A", "Thursday"},
		{"%b", "Mar"},
		{"%B", "March"},
		{"%j", "067"},
		{"%w", "4"},
		{"%U", "09"},
		{"%W", "10"},
		{"%F", "2024-03-07"},
		{"%T", "09:05:03"},
		{"%X", "09:05:03"},
		{"%D", "03/07/24"},
		{"%x", "03/07/24"},
		{"%R", "09:05"},
		{"%c", "Thu Mar  7 09:05:03 2024"},
		{"%%", "%"},
		{"%F %H-%M-%S", "2024-03-07 09-05-03"},
		{"%Y%m%d_%H%M%S", "20240307_090503"},
		{"plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			got, ok := Strftime(tt.pattern, at)
			if !ok {
				t.Fatalf("Strftime(%q) not ok", tt.pattern)
			}
			if got != tt.want {
				t.Errorf("Strftime(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestStrftime_TwelveHourClock(t *testing.T) {
	t.Parallel()

	afternoon := time.Date(2024, time.March, 7, 13, 0, 0, 0, time.UTC)
	if got, _ := Strftime("%I %p", afternoon); got != "01 PM" {
		t.Errorf("afternoon = %q, want %q", got, "01 PM")
	}

	midnight := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got, _ := Strftime("%I %p", midnight); got != "12 AM" {
		t.Errorf("midnight = %q, want %q", got, "12 AM")
	}
}

func TestStrftime_Unsupported(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

	for _, pattern := range []string{"%Q", "%", "100%", "%Y-%q"} {
		if got, ok := Strftime(pattern, at); ok {
			t.Errorf("Strftime(%q) = %q, want not ok", pattern, got)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tree, err := params.ParseBytes([]byte(`{
		"4": {"class_type": "CheckpointLoader", "inputs": {"ckpt_name": "sd15.safetensors"}},
		"5": {"class_type": "KSampler", "inputs": {
			"seed": 42,
			"steps": 20,
			"cfg": 7.5,
			"sampler_name": "euler",
			"model": ["4", 0]
		}}
	}`))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	now := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

	tokens := ParseList("sampler_name, steps, cfg, 5.seed, 9.seed, missing, model, ./fixed, %Y, %Q")
	got := Resolve(tokens, tree, now)

	want := []Resolved{
		{Token: tokens[0], Value: "euler", OK: true},
		{Token: tokens[1], Value: "20", OK: true},
		{Token: tokens[2], Value: "7.5", OK: true},
		{Token: tokens[3], Value: "42", OK: true},
		{Token: tokens[4]}, // no such node
		{Token: tokens[5]}, // no such key
		{Token: tokens[6]}, // matches an array, unrenderable
		{Token: tokens[7], Value: "fixed", OK: true},
		{Token: tokens[8], Value: "2024", OK: true},
		{Token: tokens[9]}, // unknown directive
	}

	if len(got) != len(want) {
		t.Fatalf("Resolve returned %d entries, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestResolve_DuplicateTokens(t *testing.T) {
	t.Parallel()

	tree, err := params.ParseBytes([]byte(`{"1": {"inputs": {"steps": 20}}}`))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	got := Resolve(ParseList("steps, steps"), tree, time.Now())
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for i, r := range got {
		if !r.OK || r.Value != "20" {
			t.Errorf("entry %d = %+v, want value %q", i, r, "20")
		}
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		spec         string
		wantToken    string
		wantSeverity Severity
	}{
		{name: "clean template", spec: "sampler_name, %F, 5.seed, ./sub"},
		{name: "unknown directive", spec: "%Q", wantToken: "%Q", wantSeverity: Error},
		{name: "double dotted reference", spec: "5.6.seed", wantToken: "5.6.seed", wantSeverity: Error},
		{name: "dangling dot", spec: "7.", wantToken: "7.", wantSeverity: Error},
		{name: "marker with space", spec: "./my model", wantToken: "./my model", wantSeverity: Warn},
		{name: "bare marker", spec: "./", wantToken: "./", wantSeverity: Warn},
		{name: "versioned literal is fine", spec: "v1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Check(tt.spec)
			if tt.wantToken == "" {
				if len(got) != 0 {
					t.Fatalf("Check(%q) = %+v, want none", tt.spec, got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Check(%q) = %d problems, want 1", tt.spec, len(got))
			}
			if got[0].Token != tt.wantToken || got[0].Severity != tt.wantSeverity {
				t.Errorf("problem = %+v, want token %q severity %v", got[0], tt.wantToken, tt.wantSeverity)
			}
		})
	}
}
