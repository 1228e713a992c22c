// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/fisherprime/orgchart/lexer"
)

func TestOrganization_Serialize(t *testing.T) {
	type args struct {
		start string
		cfg   *lexer.Config
	}

	canon := mustImport(t, canonical())

	tests := []struct {
		name       string
		o          *Organization
		args       args
		wantOutput string
		wantErr    error
	}{
		{
			name:       "valid",
			o:          mustImport(t, map[string][]string{"2": {"3"}, "3": {}}),
			args:       args{"2", lexer.DefaultConfig()},
			wantOutput: "2,3))",
		},
		{
			name:       "valid 2",
			o:          mustImport(t, map[string][]string{"2": {"3", "4"}, "3": {}, "4": {}}),
			args:       args{"2", nil},
			wantOutput: "2,3),4))",
		},
		{
			name:       "canonical",
			o:          canon,
			args:       args{"Jane Mayer", lexer.DefaultConfig()},
			wantOutput: "Jane Mayer,Baraka Tumuti,Abida Begum,Dave Bunt),James Ray))),Sarah Lee,David Gibbly),Kelsey Hamming)),David Heinsburg))",
		},
		{
			name:       "leaf",
			o:          canon,
			args:       args{"James Ray", &lexer.Config{}},
			wantOutput: "James Ray)",
		},
		{
			name:       "custom markers",
			o:          canon,
			args:       args{"Abida Begum", &lexer.Config{Splitter: ';', EndMarker: ']'}},
			wantOutput: "Abida Begum;Dave Bunt];James Ray]]",
		},
		{
			name: "repeated employee written as a reference",
			o: mustImport(t, map[string][]string{
				"a": {"b", "c"}, "b": {"d"}, "c": {"d"}, "d": {"e"}, "e": {},
			}),
			args:       args{"a", nil},
			wantOutput: "a,b,d,e))),c,d)))",
		},
		{
			name:    "reserved rune",
			o:       mustImport(t, map[string][]string{"Smith, J": {}}),
			args:    args{"Smith, J", nil},
			wantErr: ErrReservedRune,
		},
		{
			name:    "unknown",
			o:       canon,
			args:    args{"Unknown Person", nil},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOutput, err := tt.o.Serialize(context.Background(), tt.args.start, tt.args.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Organization.Serialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotOutput != tt.wantOutput {
				t.Errorf("Organization.Serialize() = %v, want %v", gotOutput, tt.wantOutput)
			}
		})
	}
}

func TestOrganization_Serialize_keepsConfig(t *testing.T) {
	o := mustImport(t, map[string][]string{"a": {"b"}, "b": {}})

	cfg := &lexer.Config{}
	gotOutput, err := o.Serialize(context.Background(), "a", cfg)
	if err != nil {
		t.Fatalf("Organization.Serialize() error = %v", err)
	}
	if want := "a,b))"; gotOutput != want {
		t.Errorf("Organization.Serialize() = %v, want %v", gotOutput, want)
	}
	if *cfg != (lexer.Config{}) {
		t.Errorf("Organization.Serialize() modified the Config: %+v", *cfg)
	}
}
