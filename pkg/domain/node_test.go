package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLocator_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		locator ResourceLocator
		want    string
		wantErr bool
	}{
		{
			name:    "selected mode",
			locator: ResourceLocator{Mode: ResourceLocatorMode_Selected, ID: "aud_1"},
			want:    "aud_1",
		},
		{
			name:    "manual mode",
			locator: ResourceLocator{Mode: ResourceLocatorMode_Manual, ID: "aud_2"},
			want:    "aud_2",
		},
		{
			name:    "empty mode defaults to the id",
			locator: ResourceLocator{ID: "aud_3"},
			want:    "aud_3",
		},
		{
			name:    "missing id",
			locator: ResourceLocator{Mode: ResourceLocatorMode_Selected},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			locator: ResourceLocator{Mode: "url", ID: "aud_4"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.locator.Resolve()

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
