package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSealRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request SealRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: SealRequest{Value: "bXkgc2VjcmV0", KeyID: "0000007b"},
			wantErr: false,
		},
		{
			name:    "empty value is allowed",
			request: SealRequest{Value: "", KeyID: "0000007b"},
			wantErr: false,
		},
		{
			name:    "missing key id",
			request: SealRequest{Value: "bXkgc2VjcmV0"},
			wantErr: true,
		},
		{
			name:    "key id not hex",
			request: SealRequest{Value: "bXkgc2VjcmV0", KeyID: "xyz"},
			wantErr: true,
		},
		{
			name:    "value not base64",
			request: SealRequest{Value: "not-base64!!", KeyID: "0000007b"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnsealRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UnsealRequest{Value: "bXkgc2VjcmV0"}).Validate())
	assert.NoError(t, (&UnsealRequest{Value: ""}).Validate())
	assert.Error(t, (&UnsealRequest{Value: "not-base64!!"}).Validate())
}

func TestResealRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ResealRequest{Value: "bXkgc2VjcmV0", KeyID: "000001c8"}).Validate())
	assert.Error(t, (&ResealRequest{Value: "bXkgc2VjcmV0"}).Validate())
	assert.Error(t, (&ResealRequest{Value: "bXkgc2VjcmV0", KeyID: "abc"}).Validate())
}

func TestInspectRequest_Validate(t *testing.T) {
	assert.NoError(t, (&InspectRequest{Value: "bXkgc2VjcmV0"}).Validate())
	assert.Error(t, (&InspectRequest{Value: "not-base64!!"}).Validate())
}
