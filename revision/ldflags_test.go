package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkerFlag(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		rev      Revision
		want     string
		wantErr  bool
	}{
		{name: "tag", variable: "main.version", rev: Revision{Status: Available, ID: "v1.0.0"}, want: "-X main.version=v1.0.0"},
		{name: "modified hash", variable: "github.com/acme/app/cmd.commit", rev: Revision{Status: Available, ID: "1a2b3c4+"}, want: "-X github.com/acme/app/cmd.commit=1a2b3c4+"},
		{name: "unavailable", variable: "main.version", rev: Revision{Status: Unavailable}, want: ""},
		{name: "empty variable", variable: "", rev: Revision{Status: Available, ID: "v1"}, wantErr: true},
		{name: "variable with space", variable: "main. version", rev: Revision{Status: Available, ID: "v1"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LinkerFlag(tc.variable, tc.rev)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
