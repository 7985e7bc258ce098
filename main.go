// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/scanprops/scanprops/cmd/scanprops"

func main() {
	cmd.Execute()
}
