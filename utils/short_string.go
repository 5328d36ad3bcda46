package utils

import "fmt"

func ShortenLog(addr string) string {
	index_cut := 8
	if len(addr) <= 8 {
		return addr
	} else if len(addr) <= 16 {
		index_cut = 4
	}
	return fmt.Sprintf("%s...%s", addr[:index_cut], addr[len(addr)-index_cut:])
}
