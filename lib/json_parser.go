package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"encoding/json"
)

type MaybeJson interface {
	Interface() interface{}

	Get(key string) MaybeJson

	Iterate(func(interface{}, MaybeJson))

	AsString() (string, error)

	// 数値、または数値として解釈できる文字列を数値として取得する。
	AsNumeric() (float64, error)

	// 真偽値、または真偽値として解釈できる文字列を真偽値として取得する。
	AsFlag() (bool, error)

	IsNull() bool

	IsEmpty() bool

	IsValid() bool
}

func AsJson(j interface{}) MaybeJson {
	if j == nil {
		return jsonNull{jsonEmpty{}}
	}

	switch v := j.(type) {
	case bool:
		return jsonBool{v, jsonEmpty{}}
	case float64:
		return jsonNumber{v, jsonEmpty{}}
	case string:
		return jsonString{v, jsonEmpty{}}
	case []interface{}:
		return jsonArray{v, jsonEmpty{}}
	case map[string]interface{}:
		return jsonObject{v, jsonEmpty{}}
	default:
		return jsonEmpty{}
	}
}

type jsonObject struct {
	object map[string]interface{}
	jsonEmpty
}

func (j jsonObject) Interface() interface{} {
	return j.object
}

func (j jsonObject) Get(key string) MaybeJson {
	if v, has := j.object[key]; has {
		return AsJson(v)
	} else {
		return jsonEmpty{}
	}
}

func (j jsonObject) Iterate(f func(interface{}, MaybeJson)) {
	for k, v := range j.object {
		f(k, AsJson(v))
	}
}

func (j jsonObject) IsEmpty() bool {
	return len(j.object) == 0
}

func (j jsonObject) IsValid() bool {
	return true
}

type jsonArray struct {
	array []interface{}
	jsonEmpty
}

func (j jsonArray) Interface() interface{} {
	return j.array
}

func (j jsonArray) Iterate(f func(interface{}, MaybeJson)) {
	for i, v := range j.array {
		f(i, AsJson(v))
	}
}

func (j jsonArray) IsEmpty() bool {
	return len(j.array) == 0
}

func (j jsonArray) IsValid() bool {
	return true
}

type jsonBool struct {
	value bool
	jsonEmpty
}

func (j jsonBool) Interface() interface{} {
	return j.value
}

func (j jsonBool) AsFlag() (bool, error) {
	return j.value, nil
}

func (j jsonBool) IsEmpty() bool {
	return false
}

func (j jsonBool) IsValid() bool {
	return true
}

type jsonNumber struct {
	value float64
	jsonEmpty
}

func (j jsonNumber) Interface() interface{} {
	return j.value
}

func (j jsonNumber) AsNumeric() (float64, error) {
	return j.value, nil
}

func (j jsonNumber) IsEmpty() bool {
	return false
}

func (j jsonNumber) IsValid() bool {
	return true
}

type jsonString struct {
	value string
	jsonEmpty
}

func (j jsonString) Interface() interface{} {
	return j.value
}

func (j jsonString) AsString() (string, error) {
	return j.value, nil
}

func (j jsonString) AsNumeric() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(j.value), 64)
	if err != nil {
		return 0, fmt.Errorf("This element is not a numeric string: %q", j.value)
	}
	// NaNやInfといった表記は数値として扱わない。
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("This element is not a finite number: %q", j.value)
	}
	return v, nil
}

func (j jsonString) AsFlag() (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(j.value))
	if err != nil {
		return false, fmt.Errorf("This element is not a boolean string: %q", j.value)
	}
	return v, nil
}

func (j jsonString) IsEmpty() bool {
	return len(strings.TrimSpace(j.value)) == 0
}

func (j jsonString) IsValid() bool {
	return true
}

// jsonのnull。
type jsonNull struct {
	jsonEmpty
}

func (j jsonNull) IsNull() bool {
	return true
}

func (j jsonNull) IsEmpty() bool {
	return true
}

func (j jsonNull) IsValid() bool {
	return true
}

type jsonEmpty struct {
}

func (j jsonEmpty) Interface() interface{} {
	return nil
}

func (j jsonEmpty) Get(key string) MaybeJson {
	return jsonEmpty{}
}

func (j jsonEmpty) Iterate(f func(interface{}, MaybeJson)) {
}

func (j jsonEmpty) AsString() (string, error) {
	return "", fmt.Errorf("This element is not a string")
}

func (j jsonEmpty) AsNumeric() (float64, error) {
	return 0, fmt.Errorf("This element is not a number")
}

func (j jsonEmpty) AsFlag() (bool, error) {
	return false, fmt.Errorf("This element is not a boolean")
}

func (j jsonEmpty) IsNull() bool {
	return false
}

func (j jsonEmpty) IsEmpty() bool {
	return true
}

func (j jsonEmpty) IsValid() bool {
	return false
}

func UnmarshalToMaybeJson(bytes []byte) (MaybeJson, error) {
	var body interface{}

	err := json.Unmarshal(bytes, &body)
	if err != nil {
		return nil, err
	}

	return AsJson(body), nil
}
