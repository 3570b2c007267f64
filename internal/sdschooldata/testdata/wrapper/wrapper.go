// Package pysdschooldata mirrors the exported surface of the sdschooldata
// wrapper. The data logic lives elsewhere.
package pysdschooldata

import "errors"

const Version = "0.1.0"

var errUnavailable = errors.New("pysdschooldata: data backend not linked")

type Enrollment struct {
	EndYear  int
	District string
	Count    int
}

func FetchEnr(endYear int, tidy bool, useCache bool) ([]Enrollment, error) {
	return nil, errUnavailable
}

func GetAvailableYears() ([]int, error) {
	return nil, errUnavailable
}
