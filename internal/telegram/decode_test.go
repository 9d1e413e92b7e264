package telegram

import (
	"reflect"
	"testing"

	"github.com/go-telegram/bot/models"

	"keyword_pin_bot/internal/domain"
)

func TestDecodeUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   domain.Event
		wantOK bool
	}{
		{
			name: "command with bot suffix",
			update: &models.Update{Message: &models.Message{
				ID:   7,
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
				Text: "/setkeyword@PinBot VIP",
			}},
			want: domain.Command{
				ChatID: -100, ChatType: "supergroup", UserID: 10, MessageID: 7,
				Name: "setkeyword", Mention: "PinBot", Args: []string{"VIP"},
			},
			wantOK: true,
		},
		{
			name: "command with lowercase own suffix",
			update: &models.Update{Message: &models.Message{
				ID:   9,
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
				Text: "/start@pinbot",
			}},
			want: domain.Command{
				ChatID: -100, ChatType: "supergroup", UserID: 10, MessageID: 9,
				Name: "start", Mention: "pinbot", Args: []string{},
			},
			wantOK: true,
		},
		{
			name: "command for another bot",
			update: &models.Update{Message: &models.Message{
				ID:   10,
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
				Text: "/setkeyword@SomeOtherBot spam",
			}},
		},
		{
			name: "broadcast for another bot",
			update: &models.Update{Message: &models.Message{
				ID:   11,
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: 10, Type: models.ChatTypePrivate},
				Text: "/broadcast@OtherBot hello",
			}},
		},
		{
			name: "text message",
			update: &models.Update{Message: &models.Message{
				ID:   8,
				From: &models.User{ID: 11, FirstName: "Ann"},
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup, Title: "Club"},
				Text: "hello there",
			}},
			want: domain.TextMessage{
				ChatID: -100, ChatType: "supergroup", ChatTitle: "Club",
				UserID: 11, UserName: "Ann", MessageID: 8, Text: "hello there",
			},
			wantOK: true,
		},
		{
			name: "callback on accessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "q1",
				From: models.User{ID: 12},
				Data: "viewkeyword",
				Message: models.MaybeInaccessibleMessage{
					Type:    models.MaybeInaccessibleMessageTypeMessage,
					Message: &models.Message{ID: 30, Chat: models.Chat{ID: -100}},
				},
			}},
			want:   domain.CallbackAction{QueryID: "q1", ChatID: -100, MessageID: 30, UserID: 12, Data: "viewkeyword"},
			wantOK: true,
		},
		{
			name: "callback on inaccessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "q2",
				From: models.User{ID: 12},
				Data: "setkeyword_prompt",
				Message: models.MaybeInaccessibleMessage{
					Type:                models.MaybeInaccessibleMessageTypeInaccessibleMessage,
					InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: -200}, MessageID: 31},
				},
			}},
			want:   domain.CallbackAction{QueryID: "q2", ChatID: -200, MessageID: 31, UserID: 12, Data: "setkeyword_prompt"},
			wantOK: true,
		},
		{
			name: "message without text",
			update: &models.Update{Message: &models.Message{
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: -100},
			}},
		},
		{
			name: "message without sender",
			update: &models.Update{Message: &models.Message{
				Chat: models.Chat{ID: -100},
				Text: "anonymous",
			}},
		},
		{
			name: "edited message",
			update: &models.Update{EditedMessage: &models.Message{
				From: &models.User{ID: 10},
				Chat: models.Chat{ID: -100},
				Text: "edited",
			}},
		},
		{name: "empty update", update: &models.Update{}},
		{name: "nil update"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeUpdate(tt.update, "PinBot")
			if ok != tt.wantOK {
				t.Fatalf("decodeUpdate() ok = %v, want %v", ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("decodeUpdate() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
