// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// RegID is the compact on-chain identity an account earns with its
// first state-affecting transaction: the height of the block that
// contained it and the transaction's index inside that block.
type RegID struct {
	Height uint32
	Index  uint16
}

func (r *RegID) IsEmpty() bool {
	return r.Height == 0 && r.Index == 0
}

// String renders the canonical "height-index" form.
func (r *RegID) String() string {
	return fmt.Sprintf("%d-%d", r.Height, r.Index)
}

func (r *RegID) Equal(o RegID) bool {
	return r.Height == o.Height && r.Index == o.Index
}

func (r *RegID) Serialize(w io.Writer) error {
	if err := common.WriteUint32(w, r.Height); err != nil {
		return err
	}
	return common.WriteUint16(w, r.Index)
}

func (r *RegID) Deserialize(reader io.Reader) error {
	var err error
	if r.Height, err = common.ReadUint32(reader); err != nil {
		return err
	}
	r.Index, err = common.ReadUint16(reader)
	return err
}

// RegIDFromString parses the "height-index" form.
func RegIDFromString(s string) (*RegID, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return nil, errors.New("invalid regid format")
	}
	height, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, errors.New("invalid regid height")
	}
	index, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return nil, errors.New("invalid regid index")
	}
	return &RegID{Height: uint32(height), Index: uint16(index)}, nil
}
