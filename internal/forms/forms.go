// Package forms 实现注册、登录和发帖等表单的声明式校验。
// 校验是纯函数式的：输入原始字段值，输出通过校验的类型化取值或按字段分组的错误信息，
// 二者只会出现其一；校验过程绝不写任何存储。
package forms

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EmailRX 是校验邮箱格式用的正则 (宽松版，完整的 RFC 5322 校验不在范围内)。
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// DateLayout 是生日和活动日期字段的输入格式。
const DateLayout = "2006-01-02"

// Errors 按字段收集校验错误信息。
type Errors map[string][]string

// Add 给指定字段追加一条错误信息。
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get 返回指定字段的第一条错误信息，没有错误时返回空串。
func (e Errors) Get(field string) string {
	if len(e[field]) == 0 {
		return ""
	}
	return e[field][0]
}

// Form 持有一次提交的原始字段值和校验中累积的错误。
// 重新渲染表单时 Values 用来回填用户已经填过的内容。
type Form struct {
	Values url.Values
	Errors Errors
}

// New 用提交的原始字段值初始化一个 Form。
func New(values url.Values) *Form {
	return &Form{
		Values: values,
		Errors: make(Errors),
	}
}

// Get 返回字段去掉首尾空白后的值。
func (f *Form) Get(field string) string {
	return strings.TrimSpace(f.Values.Get(field))
}

// GetInt 返回整数字段的值。只应在校验通过后调用，解析失败时返回 0。
func (f *Form) GetInt(field string) int {
	n, _ := strconv.Atoi(f.Get(field))
	return n
}

// GetDate 返回日期字段的值。只应在校验通过后调用，空或解析失败时返回零值。
func (f *Form) GetDate(field string) time.Time {
	t, _ := time.Parse(DateLayout, f.Get(field))
	return t
}

// Required 检查给定字段均不为空。
func (f *Form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" {
			f.Errors.Add(field, "This field is required")
		}
	}
}

// MinLength 检查字段值不短于 d 个字符。空值不报错，留给 Required 处理。
func (f *Form) MinLength(field string, d int) {
	value := f.Get(field)
	if value == "" {
		return
	}
	if len([]rune(value)) < d {
		f.Errors.Add(field, fmt.Sprintf("This field is too short (minimum is %d characters)", d))
	}
}

// MaxLength 检查字段值不超过 d 个字符。
func (f *Form) MaxLength(field string, d int) {
	value := f.Get(field)
	if value == "" {
		return
	}
	if len([]rune(value)) > d {
		f.Errors.Add(field, fmt.Sprintf("This field is too long (maximum is %d characters)", d))
	}
}

// MatchesEmail 检查字段值是有效的邮箱格式。
func (f *Form) MatchesEmail(field string) {
	value := f.Get(field)
	if value == "" {
		return
	}
	if !EmailRX.MatchString(value) {
		f.Errors.Add(field, "This field is not a valid email address")
	}
}

// IntRange 检查字段值是 [min, max] 范围内的整数。字段可选，空值跳过。
func (f *Form) IntRange(field string, min, max int) {
	value := f.Get(field)
	if value == "" {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		f.Errors.Add(field, "This field must be a number")
		return
	}
	if n < min || n > max {
		f.Errors.Add(field, fmt.Sprintf("This field must be between %d and %d", min, max))
	}
}

// IsDate 检查字段值是 YYYY-MM-DD 格式的日期。字段可选，空值跳过。
func (f *Form) IsDate(field string) {
	value := f.Get(field)
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		f.Errors.Add(field, "This field must be a date like 2000-01-31")
	}
}

// Check 记录一条自定义规则的结果，ok 为 false 时给字段追加 message。
// 用户名唯一性这类需要查存储的规则由调用方求值后传入。
func (f *Form) Check(field string, ok bool, message string) {
	if !ok {
		f.Errors.Add(field, message)
	}
}

// Valid 报告校验是否全部通过。
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}
