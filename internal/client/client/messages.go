package client

import (
	"errors"
	"strconv"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	genericMessageID        = "generic"
	sessionExpiredMessageID = "session_expired"
)

var englishMessages = map[string]string{
	"AUTH_FAILED":             "Authentication failed.",
	"INVALID_TOKEN":           "Invalid token.",
	"TOKEN_EXPIRED":           "Token has expired.",
	"EMAIL_NOT_VERIFIED":      "Email verification required. Please check your inbox.",
	"EMAIL_ALREADY_EXISTS":    "This email is already registered.",
	"USERNAME_ALREADY_EXISTS": "This username is already taken.",
	CodePasswordPolicy:        "Password must be at least 8 characters with 2+ types (uppercase, lowercase, digit, special character).",
	"INVALID_CREDENTIALS":     "Incorrect email or password.",
	CodeBookmarkAlreadyExists: "This content is already bookmarked.",
	"http_400":                "Invalid request. Please check your input.",
	"http_401":                "Authentication failed. Please sign in again.",
	"http_403":                "You don't have permission to perform this action.",
	"http_404":                "Resource not found.",
	"http_409":                "Conflict. This resource already exists.",
	"http_500":                "Something went wrong. Please try again later.",
	genericMessageID:          "Something went wrong. Please try again later.",
	sessionExpiredMessageID:   "Session expired. Please sign in again.",
}

var koreanMessages = map[string]string{
	"AUTH_FAILED":             "인증에 실패했습니다.",
	"INVALID_TOKEN":           "유효하지 않은 토큰입니다.",
	"TOKEN_EXPIRED":           "토큰이 만료되었습니다.",
	"EMAIL_NOT_VERIFIED":      "이메일 인증이 필요합니다. 받은 편지함을 확인해 주세요.",
	"EMAIL_ALREADY_EXISTS":    "이미 가입된 이메일입니다.",
	"USERNAME_ALREADY_EXISTS": "이미 사용 중인 사용자 이름입니다.",
	CodePasswordPolicy:        "비밀번호는 8자 이상이며 대문자, 소문자, 숫자, 특수문자 중 2가지 이상을 포함해야 합니다.",
	"INVALID_CREDENTIALS":     "이메일 또는 비밀번호가 올바르지 않습니다.",
	CodeBookmarkAlreadyExists: "이미 북마크한 콘텐츠입니다.",
	"http_400":                "잘못된 요청입니다. 입력 내용을 확인해 주세요.",
	"http_401":                "인증에 실패했습니다. 다시 로그인해 주세요.",
	"http_403":                "이 작업을 수행할 권한이 없습니다.",
	"http_404":                "리소스를 찾을 수 없습니다.",
	"http_409":                "충돌이 발생했습니다. 이미 존재하는 리소스입니다.",
	"http_500":                "문제가 발생했습니다. 잠시 후 다시 시도해 주세요.",
	genericMessageID:          "문제가 발생했습니다. 잠시 후 다시 시도해 주세요.",
	sessionExpiredMessageID:   "세션이 만료되었습니다. 다시 로그인해 주세요.",
}

// Messages resolves backend codes and HTTP statuses to display text.
// Resolution never fails: code, then status, then the generic message.
type Messages struct {
	localizer *i18n.Localizer
}

// NewMessages builds a resolver for the given locale ("en", "ko", ...).
// Unknown locales fall back to English.
func NewMessages(locale string) *Messages {
	return newMessages(locale, englishMessages, koreanMessages)
}

func newMessages(locale string, en, ko map[string]string) *Messages {
	bundle := i18n.NewBundle(language.English)
	mustAdd(bundle, language.English, en)
	mustAdd(bundle, language.Korean, ko)

	return &Messages{localizer: i18n.NewLocalizer(bundle, locale)}
}

func mustAdd(bundle *i18n.Bundle, tag language.Tag, table map[string]string) {
	msgs := make([]*i18n.Message, 0, len(table))
	for id, text := range table {
		msgs = append(msgs, &i18n.Message{ID: id, Other: text})
	}
	if err := bundle.AddMessages(tag, msgs...); err != nil {
		panic(err)
	}
}

func (m *Messages) lookup(id string) (string, bool) {
	if m == nil || id == "" {
		return "", false
	}
	text, err := m.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		// a message missing from the locale comes back in English
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			return "", false
		}
	}
	return text, text != ""
}

// Resolve returns the text for code, else for status, else the generic text.
func (m *Messages) Resolve(code string, status int) string {
	if text, ok := m.lookup(code); ok {
		return text
	}
	if text, ok := m.lookup("http_" + strconv.Itoa(status)); ok {
		return text
	}
	return m.Generic()
}

func (m *Messages) Generic() string {
	if text, ok := m.lookup(genericMessageID); ok {
		return text
	}
	return englishMessages[genericMessageID]
}

func (m *Messages) SessionExpired() string {
	if text, ok := m.lookup(sessionExpiredMessageID); ok {
		return text
	}
	return englishMessages[sessionExpiredMessageID]
}

var defaultMessages = NewMessages("en")
