package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const flagListenAddr = "listen_addr"

func init() {
	rootCmd.PersistentFlags().String(flagListenAddr, "localhost:8080", "Coordinator listen address")
}

var rootCmd = &cobra.Command{
	Use:   "cardroom_cli",
	Short: "cardroom coordinator cli utilities",
}

type jsonResponse struct {
	Result       json.RawMessage `json:"result"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

func getRequest(host, path string) (*jsonResponse, error) {
	resp, err := http.Get(fmt.Sprintf("http://%s%s", host, path))
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	return parseResponse(resp)
}

func postRequest(host, path string, body interface{}) (*jsonResponse, error) {
	bodyBz, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := http.Post(fmt.Sprintf("http://%s%s", host, path), "application/json", bytes.NewReader(bodyBz))
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	return parseResponse(resp)
}

func parseResponse(resp *http.Response) (*jsonResponse, error) {
	responseBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var response jsonResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if response.ErrorMessage != "" {
		return nil, fmt.Errorf("request failed: %s", response.ErrorMessage)
	}

	return &response, nil
}

func getInstanceNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get_instance_name",
		Short: "returns the coordinator instance name",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, err := cmd.Flags().GetString(flagListenAddr)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			response, err := getRequest(listenAddr, "/getInstanceName")
			if err != nil {
				return err
			}

			fmt.Println(string(response.Result))
			return nil
		},
	}
}

func getSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get_session [room_token]",
		Args:  cobra.ExactArgs(1),
		Short: "shows the signing session of a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, err := cmd.Flags().GetString(flagListenAddr)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			response, err := getRequest(listenAddr, "/getSession?roomToken="+args[0])
			if err != nil {
				return err
			}

			if string(response.Result) == "{}" {
				color.Yellow("no live session for room %s", args[0])
				return nil
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, response.Result, "", "  "); err != nil {
				return fmt.Errorf("failed to indent session JSON: %w", err)
			}
			fmt.Println(pretty.String())
			return nil
		},
	}
}

func closeRoomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close_room [room_token]",
		Args:  cobra.ExactArgs(1),
		Short: "tears a room down without waiting for the TTL",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, err := cmd.Flags().GetString(flagListenAddr)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			if _, err := postRequest(listenAddr, "/closeRoom", map[string]string{
				"roomToken": args[0],
			}); err != nil {
				return err
			}

			color.Green("room %s closed", args[0])
			return nil
		},
	}
}

func renameRoomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename_room [old_token] [new_token]",
		Args:  cobra.ExactArgs(2),
		Short: "moves a session under a durable room token",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, err := cmd.Flags().GetString(flagListenAddr)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			if _, err := postRequest(listenAddr, "/renameRoom", map[string]string{
				"oldToken": args[0],
				"newToken": args[1],
			}); err != nil {
				return err
			}

			color.Green("room %s renamed to %s", args[0], args[1])
			return nil
		},
	}
}

func signerDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signer_done [collection_id] [signer_token]",
		Args:  cobra.ExactArgs(2),
		Short: "runs the completion workflow for a finished signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, err := cmd.Flags().GetString(flagListenAddr)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			response, err := postRequest(listenAddr, "/signerDone", map[string]string{
				"collectionId": args[0],
				"signerToken":  args[1],
			})
			if err != nil {
				return err
			}

			var result struct {
				DownloadLink string `json:"download_link"`
			}
			if err := json.Unmarshal(response.Result, &result); err != nil {
				return fmt.Errorf("failed to unmarshal result: %w", err)
			}

			if result.DownloadLink == "" {
				color.Yellow("workflow advanced, collection not complete yet")
			} else {
				color.Green("collection complete: %s", result.DownloadLink)
			}
			return nil
		},
	}
}

func main() {
	rootCmd.AddCommand(
		getInstanceNameCommand(),
		getSessionCommand(),
		closeRoomCommand(),
		renameRoomCommand(),
		signerDoneCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}
