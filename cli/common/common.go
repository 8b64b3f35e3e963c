// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/common/config"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli"
)

// Address returns the restful endpoint of the local node.
func Address() string {
	params := config.Parameters
	if params == nil {
		params = config.GetDefaultParams()
	}
	return "http://localhost:" + strconv.Itoa(params.HttpRestPort)
}

func PrintError(c *cli.Context, err error, cmd string) {
	fmt.Println("Incorrect Usage:", err)
	fmt.Println("")
	cli.ShowCommandHelp(c, cmd)
}

func PrintErrorAndExit(errMsg string) {
	fmt.Println("error:", errMsg)
	os.Exit(1)
}

func FormatOutput(o []byte) error {
	var out bytes.Buffer
	err := json.Indent(&out, o, "", "\t")
	if err != nil {
		return err
	}
	out.Write([]byte("\n"))
	_, err = out.WriteTo(os.Stdout)

	return err
}

// ReadFile reads a transaction hex string out of a file.
func ReadFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errors.New("invalid transaction file path")
	}
	file, err := os.OpenFile(path, os.O_RDONLY, 0400)
	if err != nil {
		return "", errors.New("open transaction file failed")
	}
	defer file.Close()
	rawData, err := ioutil.ReadAll(file)
	if err != nil {
		return "", errors.New("read transaction file failed")
	}
	content := strings.TrimSpace(string(rawData))
	if content == "" {
		return "", errors.New("transaction file is empty")
	}
	return content, nil
}

// SendRawTransaction posts a signed transaction to the local node's
// restful server and returns the hash the node replies with.
func SendRawTransaction(txHex string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{"data": txHex})
	if err != nil {
		return "", err
	}
	resp, err := http.Post(Address()+"/api/v1/transaction",
		"application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if errCode := gjson.GetBytes(body, "Error"); errCode.Int() != 0 {
		desc := gjson.GetBytes(body, "Desc").String()
		if desc == "" {
			desc = gjson.GetBytes(body, "Result").String()
		}
		return "", errors.New("transaction rejected: " + desc)
	}
	return gjson.GetBytes(body, "Result").String(), nil
}

// GenerateBlocks asks the local node to settle its pooled transactions
// into count new blocks and returns the raw reply.
func GenerateBlocks(count uint32) (string, error) {
	reqBody, err := json.Marshal(map[string]uint32{"count": count})
	if err != nil {
		return "", err
	}
	resp, err := http.Post(Address()+"/api/v1/block/generate",
		"application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if errCode := gjson.GetBytes(body, "Error"); errCode.Int() != 0 {
		return "", errors.New("generate blocks failed: " +
			gjson.GetBytes(body, "Result").String())
	}
	return gjson.GetBytes(body, "Result").Raw, nil
}
