// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utils

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/howeyc/gopass"
)

// GetPassword gets password from user input
func GetPassword() ([]byte, error) {
	fmt.Printf("Password:")
	return gopass.GetPasswd()
}

// GetConfirmedPassword gets double confirmed password from user input
func GetConfirmedPassword() ([]byte, error) {
	fmt.Printf("Password:")
	first, err := gopass.GetPasswd()
	if err != nil {
		return nil, err
	}
	fmt.Printf("Re-enter Password:")
	second, err := gopass.GetPasswd()
	if err != nil {
		return nil, err
	}
	if len(first) != len(second) {
		fmt.Println("Unmatched Password")
		os.Exit(1)
	}
	for i, v := range first {
		if v != second[i] {
			fmt.Println("Unmatched Password")
			os.Exit(1)
		}
	}
	return first, nil
}

// StartPProf serves the runtime statistics dashboard on port.
func StartPProf(port uint32, host string) {
	listenAddr := net.JoinHostPort("", strconv.FormatUint(
		uint64(port), 10))
	viewer.SetConfiguration(viewer.WithMaxPoints(100),
		viewer.WithInterval(3e5),
		viewer.WithAddr(listenAddr),
		viewer.WithLinkAddr(host))
	mgr := statsview.New()
	mgr.Start()
}

func FileExisted(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil || os.IsExist(err)
}

func StringExisted(src []string, check string) bool {
	for _, ar := range src {
		if ar == check {
			return true
		}
	}
	return false
}
