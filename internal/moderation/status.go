// Package moderation реализует жизненный цикл модерации статьи.
//
// Статья проходит состояния Pending → Approved | Declined. Status хранит
// состояние как размеченный тип: одновременно "одобрено" и "отклонено"
// выразить невозможно. Approve очищает прежнее отклонение, Decline — прежнее
// одобрение; повторное одобрение идемпотентно, повторное отклонение
// перезаписывает сообщение модератора.
package moderation

import (
	"encoding/json"
	"errors"
)

// State перечисляет состояния модерации.
type State int

const (
	// StatePending — начальное состояние, статья не видна в публичных выборках.
	StatePending State = iota
	// StateApproved — статья одобрена администратором и видна публично.
	StateApproved
	// StateDeclined — статья отклонена с сообщением модератора.
	StateDeclined
)

// ErrEmptyDeclineMessage возвращается при попытке отклонить статью без
// сообщения модератора.
var ErrEmptyDeclineMessage = errors.New("decline message is required")

// Status представляет текущее состояние модерации статьи.
// Нулевое значение — Pending.
type Status struct {
	state          State
	declineMessage string
}

// Pending возвращает начальный статус модерации.
func Pending() Status {
	return Status{state: StatePending}
}

// State возвращает текущее состояние.
func (s Status) State() State { return s.state }

// IsApproved сообщает, одобрена ли статья. Правило видимости для всех
// публичных выборок: статья видна тогда и только тогда, когда IsApproved.
func (s Status) IsApproved() bool { return s.state == StateApproved }

// IsDeclined сообщает, отклонена ли статья.
func (s Status) IsDeclined() bool { return s.state == StateDeclined }

// DeclineMessage возвращает сообщение модератора для отклонённой статьи.
func (s Status) DeclineMessage() (string, bool) {
	if s.state != StateDeclined {
		return "", false
	}
	return s.declineMessage, true
}

// Approve переводит статус в Approved. Прежнее отклонение и его сообщение
// сбрасываются; повторный вызов для уже одобренной статьи ничего не меняет.
func (s Status) Approve() Status {
	return Status{state: StateApproved}
}

// Decline переводит статус в Declined с обязательным сообщением модератора.
// Прежнее одобрение сбрасывается; повторное отклонение перезаписывает
// сообщение.
func (s Status) Decline(message string) (Status, error) {
	if message == "" {
		return s, ErrEmptyDeclineMessage
	}
	return Status{state: StateDeclined, declineMessage: message}, nil
}

// FromFlags восстанавливает статус из пары булевых флагов хранилища.
// Для старых записей, где оба флага взведены, побеждает отклонение:
// оно было выставлено поверх одобрения.
func FromFlags(approved, declined bool, declineMessage string) Status {
	switch {
	case declined:
		return Status{state: StateDeclined, declineMessage: declineMessage}
	case approved:
		return Status{state: StateApproved}
	default:
		return Status{state: StatePending}
	}
}

// Flags возвращает представление статуса парой булевых флагов и сообщением
// для записи в хранилище.
func (s Status) Flags() (approved, declined bool, declineMessage string) {
	return s.state == StateApproved, s.state == StateDeclined, s.declineMessage
}

// statusJSON — форма статуса на проводе, совместимая с клиентами.
type statusJSON struct {
	IsApprove      bool    `json:"isApprove"`
	IsDecline      bool    `json:"isDecline"`
	DeclineMessage *string `json:"declineMessage"`
}

// MarshalJSON сериализует статус в форму {isApprove, isDecline, declineMessage}.
func (s Status) MarshalJSON() ([]byte, error) {
	out := statusJSON{
		IsApprove: s.state == StateApproved,
		IsDecline: s.state == StateDeclined,
	}
	if s.state == StateDeclined {
		out.DeclineMessage = &s.declineMessage
	}
	return json.Marshal(out)
}

// UnmarshalJSON разбирает форму провода; при одновременно взведённых флагах
// действует то же правило, что и в FromFlags.
func (s *Status) UnmarshalJSON(data []byte) error {
	var in statusJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var msg string
	if in.DeclineMessage != nil {
		msg = *in.DeclineMessage
	}
	*s = FromFlags(in.IsApprove, in.IsDecline, msg)
	return nil
}
