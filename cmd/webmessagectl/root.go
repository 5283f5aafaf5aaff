package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahon/webmessage/host"
	"github.com/ahon/webmessage/store"
)

var (
	dbPath string
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webmessagectl",
		Short: "Drive the webmessage host façade against a local store",
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "webmessage.db", "path to the local CBOR-encoded persistence file")

	root.AddCommand(
		newInitAccountCmd(),
		newAllAccountsCmd(),
		newNewAccountCmd(),
		newSetCurrentAccountCmd(),
		newDeleteAccountCmd(),
		newSignCmd(),
		newAddCmd(),
		newImportCmd(),
		newMessagesCmd(),
		newGroupsCmd(),
		newValidateCmd(),
		newClearCmd(),
	)
	return root
}

func openHost() (*host.Host, error) {
	logger, _ = zap.NewDevelopment()
	port, err := store.NewFilePort(dbPath)
	if err != nil {
		return nil, err
	}
	return host.New(port, host.WithLogger(logger)), nil
}
