package helper

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strconv"
	"strings"

	"radar/pkg/apperror"

	"github.com/samber/lo"
)

func ToJSON(data interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal data: %v", err)
		return nil
	}
	return json.RawMessage(bytes)
}

// 첫 번째 경로 요소를 추출하고 나머지 경로를 반환하는 함수
func ExtractFirstPath(path string) (string, string) {
	parts := strings.SplitN(path, "/", 3)

	if len(parts) > 1 {
		firstPath := parts[1]
		if len(parts) > 2 {
			return firstPath, "/" + parts[2]
		}
		return firstPath, "/"
	}

	return "", "/"
}

// ParsePositiveInt: 양의 정수가 아니면 기본값 반환
func ParsePositiveInt(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

// DecodeJSON: 요청 본문 디코딩. 알 수 없는 키는 거부
func DecodeJSON(r io.Reader, dst interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request payload", err)
	}
	return nil
}

// DecodeAllowed: 허용된 키만 포함된 경우에만 디코딩. 그 외 키가 있으면 "Invalid updates"
func DecodeAllowed(r io.Reader, dst interface{}, allowed ...string) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request payload", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request payload", err)
	}

	if !lo.Every(allowed, lo.Keys(fields)) {
		return apperror.Validation("Invalid updates")
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(dst); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request payload", err)
	}
	return nil
}
