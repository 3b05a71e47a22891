package shared

import (
	"reflect"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/spiker/fick-server/lib"
	S "github.com/spiker/fick-server/service"
)

// サービスの構造体を生成し、型に応じてリクエスト単位の依存を注入する。
func CreateService(obj interface{}, c echo.Context) interface{} {
	cc, ok := c.(*Context)
	if !ok {
		cc = &Context{c}
	}

	t := reflect.TypeOf(obj)

	v := reflect.New(t)
	e := v.Elem()

	for i := 0; i < e.NumField(); i++ {
		valueField := e.Field(i)
		typeField := t.Field(i)
		valueType := typeField.Type

		if valueType.Kind() == reflect.Ptr {
			valueType = valueType.Elem()
		}
		if valueType == reflect.TypeOf(cache.Cache{}) {
			if store := cc.GetCache(); store != nil {
				valueField.Set(reflect.ValueOf(store))
			}
		} else if valueType == reflect.TypeOf(lib.Localizer{}) {
			valueField.Set(reflect.ValueOf(cc.Localizer()))
		} else if valueType == reflect.TypeOf(S.Service{}) {
			valueField.Set(reflect.ValueOf(&S.Service{
				Log: cc.Log(),
			}))
		}
	}

	return v.Interface()
}
