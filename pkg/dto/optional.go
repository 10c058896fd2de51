package dto

import "encoding/json"

// Optional은 JSON 키가 요청에 존재했는지를 값과 함께 기록합니다.
// 키가 없으면 Set == false, 명시적 null이면 Set == true && Null == true 입니다.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get은 값이 존재하고 null이 아닐 때만 ok == true를 반환합니다
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}
