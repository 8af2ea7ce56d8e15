package utils

import "strings"

// StringEnum повторяемый флаг (--plugin a --plugin b), реализует pflag.Value
type StringEnum []string

func (i *StringEnum) String() string {
	return strings.Join(*i, ",")
}

func (i *StringEnum) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func (i *StringEnum) Type() string {
	return "stringEnum"
}
