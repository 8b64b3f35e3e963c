// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package main

import (
	"os"
	"sort"

	_ "github.com/lumachain/Lumachain.LUMA/cli"
	"github.com/lumachain/Lumachain.LUMA/cli/bench"
	"github.com/lumachain/Lumachain.LUMA/cli/script"
	"github.com/lumachain/Lumachain.LUMA/cli/wallet"

	"github.com/urfave/cli"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "lumactl"
	app.Version = Version
	app.HelpName = "lumactl"
	app.Usage = "command line tool for Lumachain blockchain"
	app.UsageText = "lumactl [global options] command [command options] [args]"
	app.HideHelp = false
	app.HideVersion = false
	//commands
	app.Commands = []cli.Command{
		*wallet.NewCommand(),
		*script.NewCommand(),
		*bench.NewCommand(),
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	sort.Sort(cli.FlagsByName(app.Flags))

	app.Run(os.Args)
}
