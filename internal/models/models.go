package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleBool - гибкий boolean тип, поддерживающий строки и числа
type FlexibleBool bool

// UnmarshalJSON поддерживает парсинг boolean из строки, числа и boolean
func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	v, err := ParseFlexibleBool(str)
	if err != nil {
		return err
	}
	*fb = v
	return nil
}

// ParseFlexibleBool разбирает значения формы вида "true", "1", "on"
func ParseFlexibleBool(str string) (FlexibleBool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", str)
	}
}

// Bool возвращает bool значение
func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// SaveRequest - тело запроса сохранения документа.
// Поля password/data принимаются для совместимости со старой админкой.
type SaveRequest struct {
	Credential string          `json:"credential,omitempty"`
	Password   string          `json:"password,omitempty"`
	Document   json.RawMessage `json:"document,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Secret returns the supplied credential under either field name
func (r *SaveRequest) Secret() string {
	if r.Credential != "" {
		return r.Credential
	}
	return r.Password
}

// Payload returns the supplied document, or nil when none was sent
func (r *SaveRequest) Payload() json.RawMessage {
	for _, raw := range []json.RawMessage{r.Document, r.Data} {
		trimmed := strings.TrimSpace(string(raw))
		if trimmed != "" && trimmed != "null" {
			return raw
		}
	}
	return nil
}

// SaveResponse - ответ на успешное сохранение
// Commit дублирует Revision для старой админки
type SaveResponse struct {
	OK       bool   `json:"ok"`
	Revision string `json:"revision"`
	Commit   string `json:"commit,omitempty"`
}

// UploadResponse - ответ на успешную загрузку файла
type UploadResponse struct {
	OK       bool   `json:"ok"`
	Path     string `json:"path"`
	Revision string `json:"revision"`
	Commit   string `json:"commit,omitempty"`
	Thumb    string `json:"thumb,omitempty"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// UploadFile is one uploaded media file held in memory
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SaveResult is the outcome of a document commit
type SaveResult struct {
	Path     string
	Revision string
}

// UploadResult is the outcome of a media commit
type UploadResult struct {
	Path          string
	Revision      string
	ThumbPath     string
	ThumbRevision string
}
