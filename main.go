// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pursctl/pursctl/cmd/pursctl"

func main() {
	cmd.Execute()
}
