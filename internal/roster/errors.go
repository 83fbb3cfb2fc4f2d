package roster

import "fmt"

// ConfigurationError 表示排班规则参数非法，属于致命错误，不会进行任何计算。
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

// InputValidationError 表示输入数据非法（工号重复、日期区间颠倒等），
// 在任何排班逻辑运行之前返回。
type InputValidationError struct {
	msg string
}

func (e *InputValidationError) Error() string {
	return e.msg
}

// InsufficientHeadcountError 表示人数不足以保证三班全覆盖，在搜索开始之前返回。
type InsufficientHeadcountError struct {
	Headcount int
	Required  int
}

func (e *InsufficientHeadcountError) Error() string {
	return fmt.Sprintf("在岗人数 %d 少于排班所需的最小人数 %d", e.Headcount, e.Required)
}
