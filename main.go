// main is the entry point for the testaudit CLI.
package main

import (
	"github.com/huangsam/testaudit/cmd"
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/logging"
	"github.com/huangsam/testaudit/internal/store"
)

func main() {
	cmd.SetStoreManager(store.Manager)

	err := cmd.Execute()
	store.CloseStores()
	logging.Sync()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
