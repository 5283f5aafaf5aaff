package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <group> <data>",
		Short: "Sign data as the next message in group's chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			raw, err := h.SignMessage(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "add <group>",
		Short: "Admit a foreign signed message (JSON) read from --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			var raw []byte
			if file != "" {
				raw, err = os.ReadFile(file)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			hashText, errStr := h.AddSignedMessage(context.Background(), args[0], raw)
			if errStr != "" {
				return errors.New(errStr)
			}
			fmt.Println(hashText)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON-encoded signed message")
	return cmd
}

func newImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import <group>",
		Short: "Admit a batch of foreign signed messages (a JSON array) read from --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			var raw []byte
			if file != "" {
				raw, err = os.ReadFile(file)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			var rawMessages []json.RawMessage
			if err := json.Unmarshal(raw, &rawMessages); err != nil {
				return err
			}
			jsonMessages := make([][]byte, len(rawMessages))
			for i, m := range rawMessages {
				jsonMessages[i] = []byte(m)
			}

			admitted, errStr := h.ImportMessages(context.Background(), args[0], jsonMessages)
			fmt.Printf("admitted %d message(s)\n", admitted)
			if errStr != "" {
				return errors.New(errStr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON array of signed messages")
	return cmd
}

func newMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <group>",
		Short: "List group's chain, tip to root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			msgs, err := h.Messages(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Println(string(m))
			}
			return nil
		},
	}
}

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List every known group",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			for _, g := range h.Groups(context.Background()) {
				fmt.Printf("%s\t%d\n", g.ID, g.Timestamp)
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <group>",
		Short: "Validate group's chain end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			fmt.Println(h.ValidateMessages(context.Background(), args[0]))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Wipe the entire persistence namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openHost()
			if err != nil {
				return err
			}
			return h.Clear(context.Background())
		},
	}
}
