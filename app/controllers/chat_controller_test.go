package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     chatRequest
		wantErr string
	}{
		{
			name: "valid request",
			req:  chatRequest{AssistantID: "asst_1", Message: "write chapter one"},
		},
		{
			name:    "missing assistant id",
			req:     chatRequest{Message: "hello"},
			wantErr: "assistant_id is required",
		},
		{
			name:    "blank message",
			req:     chatRequest{AssistantID: "asst_1", Message: "   "},
			wantErr: "message is required",
		},
		{
			name: "thread id is optional",
			req:  chatRequest{AssistantID: "asst_1", Message: "continue"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
