package moderation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	s := Pending()
	assert.False(t, s.IsApproved())
	assert.False(t, s.IsDeclined())

	approved := s.Approve()
	assert.True(t, approved.IsApproved())
	assert.False(t, approved.IsDeclined())

	// повторное одобрение идемпотентно
	assert.Equal(t, approved, approved.Approve())

	declined, err := approved.Decline("plagiarism")
	require.NoError(t, err)
	assert.True(t, declined.IsDeclined())
	assert.False(t, declined.IsApproved())
	msg, ok := declined.DeclineMessage()
	assert.True(t, ok)
	assert.Equal(t, "plagiarism", msg)

	// одобрение сбрасывает отклонение и его сообщение
	reapproved := declined.Approve()
	assert.True(t, reapproved.IsApproved())
	_, ok = reapproved.DeclineMessage()
	assert.False(t, ok)

	// повторное отклонение перезаписывает сообщение
	redeclined, err := declined.Decline("spam")
	require.NoError(t, err)
	msg, _ = redeclined.DeclineMessage()
	assert.Equal(t, "spam", msg)
}

func TestDeclineRequiresMessage(t *testing.T) {
	s := Pending()
	_, err := s.Decline("")
	assert.ErrorIs(t, err, ErrEmptyDeclineMessage)
}

func TestFromFlags(t *testing.T) {
	tests := []struct {
		name          string
		approved      bool
		declined      bool
		message       string
		wantState     State
		wantMessageOK bool
	}{
		{name: "оба флага сняты", wantState: StatePending},
		{name: "одобрено", approved: true, wantState: StateApproved},
		{name: "отклонено", declined: true, message: "off-topic", wantState: StateDeclined, wantMessageOK: true},
		{name: "оба флага взведены: побеждает отклонение", approved: true, declined: true, message: "dup", wantState: StateDeclined, wantMessageOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromFlags(tt.approved, tt.declined, tt.message)
			assert.Equal(t, tt.wantState, s.State())
			msg, ok := s.DeclineMessage()
			assert.Equal(t, tt.wantMessageOK, ok)
			if ok {
				assert.Equal(t, tt.message, msg)
			}
		})
	}
}

func TestStatusJSON(t *testing.T) {
	declined, err := Pending().Decline("too short")
	require.NoError(t, err)

	data, err := json.Marshal(declined)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isApprove":false,"isDecline":true,"declineMessage":"too short"}`, string(data))

	var restored Status
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, declined, restored)

	data, err = json.Marshal(Pending().Approve())
	require.NoError(t, err)
	assert.JSONEq(t, `{"isApprove":true,"isDecline":false,"declineMessage":null}`, string(data))

	// старые записи с обоими флагами разбираются по правилу FromFlags
	var legacy Status
	require.NoError(t, json.Unmarshal([]byte(`{"isApprove":true,"isDecline":true,"declineMessage":"dup"}`), &legacy))
	assert.True(t, legacy.IsDeclined())
}
