package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInitAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-account",
		Short: "Ensure at least one account exists, printing the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			id, err := h.InitAccount(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func newAllAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all-accounts",
		Short: "List every known account in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			for _, a := range h.AllAccounts(context.Background()) {
				fmt.Printf("%s\t%s\n", a.Identity, a.Label)
			}
			return nil
		},
	}
}

func newNewAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-account",
		Short: "Generate a fresh account and set it current",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			id, err := h.NewAccount(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func newSetCurrentAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-current-account <identity>",
		Short: "Set the current account cursor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			return h.SetCurrentAccount(context.Background(), args[0])
		},
	}
}

func newDeleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account <identity>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			return h.DeleteAccount(context.Background(), args[0])
		},
	}
}
