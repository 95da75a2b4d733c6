package node

import "strings"

// IsResponseFormatUnsupportedError 判断提供商是否不支持结构化输出参数，
// 命中时链路会退回到纯文本提示再做 JSON 截取。
func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "response_format") || strings.Contains(msg, "response_schema") || strings.Contains(msg, "json_schema") {
		return true
	}
	if strings.Contains(msg, "response") {
		return strings.Contains(msg, "unknown parameter") || strings.Contains(msg, "invalid")
	}
	return false
}
