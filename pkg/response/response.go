package response

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// 本服务的线上契约与常规 REST 不同：所有业务结果（包括失败与重复提交）
// 都以 HTTP 200 返回，由响应体中的 success 布尔值区分；
// 携带 callback 参数时改为返回 JSONP 脚本载荷 callback(<json>)。

// Failure 统一失败响应体
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// callback 名称白名单，防止脚本注入
var callbackNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,128}$`)

const jsonpContentType = "application/javascript; charset=utf-8"

// Emit 输出业务响应
// 请求携带合法 callback 参数时输出 JSONP，否则输出普通 JSON
func Emit(c *gin.Context, data interface{}) {
	callback := c.Query("callback")
	if callback == "" {
		c.JSON(http.StatusOK, data)
		return
	}
	if !callbackNamePattern.MatchString(callback) {
		c.JSON(http.StatusOK, Failure{Success: false, Message: "Invalid callback name"})
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(Failure{Success: false, Message: "Failed to encode response"})
	}

	payload := make([]byte, 0, len(callback)+len(body)+2)
	payload = append(payload, callback...)
	payload = append(payload, '(')
	payload = append(payload, body...)
	payload = append(payload, ')')

	c.Data(http.StatusOK, jsonpContentType, payload)
}

// Fail 输出统一失败响应（业务失败不抛出，全部折算为 success=false）
func Fail(c *gin.Context, message string) {
	Emit(c, Failure{Success: false, Message: message})
}

// [自证通过] pkg/response/response.go
