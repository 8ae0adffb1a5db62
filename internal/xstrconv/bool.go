package xstrconv

import (
	"strconv"
	"strings"
)

// ParseBool accepts everything strconv.ParseBool does plus on/off and sim/nao.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "sim", "s", "yes", "y":
		return true, nil
	case "off", "nao", "não", "n", "no":
		return false, nil
	default:
		return strconv.ParseBool(str)
	}
}
