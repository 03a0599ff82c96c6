// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/modify/modify/cmd/modify"

func main() {
	cmd.Execute()
}
