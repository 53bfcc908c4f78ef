/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ihttp "github.com/tochemey/contacts/internal/http"
)

var (
	healthHost    string
	healthPort    int
	healthTimeout time.Duration
)

// healthcheckCmd probes a running contacts server
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that a contacts server is healthy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := healthcheck(cmd.Context(), ihttp.URL(healthHost, healthPort), healthTimeout); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

// healthcheck calls the health endpoint of the server at baseURL
func healthcheck(ctx context.Context, baseURL string, timeout time.Duration) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	response, err := ihttp.NewClient(timeout).Do(request)
	if err != nil {
		return errors.Wrap(err, "health check failed")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return errors.Errorf("health check failed with status %d", response.StatusCode)
	}
	return nil
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthHost, "host", "127.0.0.1", "server host")
	healthcheckCmd.Flags().IntVar(&healthPort, "port", 3000, "server port")
	healthcheckCmd.Flags().DurationVar(&healthTimeout, "timeout", 2*time.Second, "request timeout")
	rootCmd.AddCommand(healthcheckCmd)
}
