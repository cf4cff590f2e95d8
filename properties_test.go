// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"encoding"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Ensure File satisfies the encoding.Text* interfaces.
var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(File)

// propInput exercises comments, blank lines, a timestamp header, every
// separator style, and a repeated key.
const propInput = `# A comment before the timestamp
#Thu Mar 16 17:06:52 EDT 2017
# A comment after the timestamp
foo: first definition
bar=only definition

# Comment between values

key = value

zebra \
    apple
foo : second definition

# Comment at end of file
`

func TestNil(t *testing.T) {
	f := (*File)(nil)
	if got := f.Get("foo"); got != "" {
		t.Errorf("Get(...) = %q; want empty", got)
	}
	if _, ok := f.Lookup("foo"); ok {
		t.Error("Lookup(...) ok = true; want false")
	}
	if got := f.Len(); got != 0 {
		t.Errorf("Len() = %d; want 0", got)
	}
	if got := f.Keys(); len(got) > 0 {
		t.Errorf("Keys() = %q; want empty", got)
	}
	if got, err := f.MarshalText(); err != nil {
		t.Errorf("MarshalText(): %v", err)
	} else if len(got) > 0 {
		t.Errorf("MarshalText() = %q; want empty", got)
	}
	f.Delete("foo") // must not panic
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		want     map[string]string
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "Empty",
			want:     map[string]string{},
			wantKeys: []string{},
		},
		{
			name:     "Single",
			source:   "key=value\n",
			want:     map[string]string{"key": "value"},
			wantKeys: []string{"key"},
		},
		{
			name:     "CommentsAndBlanksDiscarded",
			source:   "# comment\n\nkey=value\n! another\n",
			want:     map[string]string{"key": "value"},
			wantKeys: []string{"key"},
		},
		{
			name:   "DuplicateKeyLastValueFirstPosition",
			source: "a=1\nb=2\na=3\n",
			want: map[string]string{
				"a": "3",
				"b": "2",
			},
			wantKeys: []string{"a", "b"},
		},
		{
			name:   "Fixture",
			source: propInput,
			want: map[string]string{
				"foo":   "second definition",
				"bar":   "only definition",
				"key":   "value",
				"zebra": "apple",
			},
			wantKeys: []string{"foo", "bar", "key", "zebra"},
		},
		{
			name:    "MalformedEscape",
			source:  `k=\u12` + "\n",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(test.source))
			if test.wantErr {
				if err == nil {
					t.Fatalf("Load(...) = %v, <nil>; want error", f)
				}
				if f != nil {
					t.Errorf("Load(...) returned partial table %v with error", f)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := make(map[string]string)
			for _, k := range f.Keys() {
				got[k] = f.Get(k)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("entries (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantKeys, f.Keys(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Keys() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetAndDelete(t *testing.T) {
	f, err := Load(strings.NewReader("a=1\nb=2\nc=3\n"))
	if err != nil {
		t.Fatal(err)
	}
	f.Set("b", "20")
	f.Set("d", "4")
	f.Delete("a")
	f.Delete("missing")

	wantKeys := []string{"b", "c", "d"}
	if diff := cmp.Diff(wantKeys, f.Keys()); diff != "" {
		t.Errorf("Keys() (-want +got):\n%s", diff)
	}
	want := map[string]string{"b": "20", "c": "3", "d": "4"}
	got := make(map[string]string)
	for _, k := range f.Keys() {
		got[k] = f.Get(k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if _, ok := f.Lookup("a"); ok {
		t.Error(`Lookup("a") ok = true after Delete; want false`)
	}
}

func TestLoadDumpRoundTrip(t *testing.T) {
	f, err := Load(strings.NewReader(propInput))
	if err != nil {
		t.Fatal(err)
	}
	text, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	reloaded := new(File)
	if err := reloaded.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f.Keys(), reloaded.Keys()); diff != "" {
		t.Errorf("Keys() after round trip (-want +got):\n%s", diff)
	}
	for _, k := range f.Keys() {
		if got, want := reloaded.Get(k), f.Get(k); got != want {
			t.Errorf("reloaded Get(%q) = %q; want %q", k, got, want)
		}
	}
}
