package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// HTTPハンドラに対するテストケース。
type HttpTest struct {
	Name   string
	Method string
	Path   string
	Token  string
	Query  func(url.Values)
	Header map[string]string
	Body   io.Reader
	Check  func(*testing.T, *httptest.ResponseRecorder)
}

type HttpTests []HttpTest

// 各テストケースを順に実行する。afterは各ケースの後に呼ばれる。
func (tests HttpTests) Run(handler http.Handler, t *testing.T, after func()) {
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			req := httptest.NewRequest(test.Method, test.Path, test.Body)

			if test.Query != nil {
				q := req.URL.Query()
				test.Query(q)
				req.URL.RawQuery = q.Encode()
			}

			if test.Body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			if len(test.Token) > 0 {
				req.Header.Set("Authorization", "Bearer "+test.Token)
			}

			for key, value := range test.Header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if test.Check != nil {
				test.Check(t, rec)
			}

			if after != nil {
				after()
			}
		})
	}
}

func JsonBody(body interface{}) io.Reader {
	bs, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(bs)
}

func RawBody(body string) io.Reader {
	return strings.NewReader(body)
}

// レスポンスをJSONとしてvにデコードし、vを返す。
func FromJsonResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) interface{} {
	err := json.Unmarshal(rec.Body.Bytes(), v)
	assert.NoError(t, err, rec.Body.String())
	return v
}
