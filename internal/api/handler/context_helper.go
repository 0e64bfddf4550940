package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetIdentity 提取 user_id 与 username
func MustGetIdentity(c *gin.Context) (dto.Identity, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return dto.Identity{}, false
	}
	return dto.Identity{UserID: userID, Username: c.GetString("username")}, true
}

// ── 参数校验 ──

var registerOnce sync.Once

// RegisterValidatorTagNames 让校验错误中的字段名使用 json/uri/form 标签名
func RegisterValidatorTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "uri", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// validationReasons 将绑定错误转换为机器可读的原因列表（field:tag）
func validationReasons(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		reasons := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			reasons = append(reasons, fe.Field()+":"+fe.Tag())
		}
		return reasons
	}
	return []string{"request:malformed"}
}

// isBodyTooLarge 请求体是否超出 BodyLimit 限制
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// isFormPost 是否为浏览器表单提交（此时以重定向应答）
func isFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	}
	return false
}

func joinReasons(err error) string {
	return strings.Join(validationReasons(err), ",")
}
