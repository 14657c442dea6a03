// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	cmd "create-hedera-agent/cmd/create-hedera-agent"
)

func main() {
	os.Exit(cmd.Main())
}
