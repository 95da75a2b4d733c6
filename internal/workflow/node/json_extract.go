package node

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ExtractJSONObject 从模型输出中截取第一个 JSON 对象或数组。
// 大纲与封面提示词的模型经常在 JSON 前后附带说明文字或 ``` 围栏。
func ExtractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	if span := jsonSpan(raw); span != "" {
		raw = span
	}

	if startsWithJSONValue(raw) {
		return raw
	}

	// 无法确认起始 token 时再完整消费一遍，失败就返回原文
	dec := json.NewDecoder(strings.NewReader(raw))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return raw
			}
			return strings.TrimSpace(s)
		}
	}
}

// jsonSpan 截取首个 '{' 或 '[' 到与之配对类型的最后一个闭合符
func jsonSpan(raw string) string {
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")

	start, end := -1, -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return ""
}

func startsWithJSONValue(raw string) bool {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	d, ok := tok.(json.Delim)
	return ok && (d == '{' || d == '[')
}
