package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/preview"
)

var (
	previewPort int
	previewDir  string
	previewNoQR bool
)

func init() {
	previewCmd.Flags().IntVarP(&previewPort, "port", "p", preview.DefaultPort, "Port to listen on")
	previewCmd.Flags().StringVar(&previewDir, "dir", ".", "Directory to serve")
	previewCmd.Flags().BoolVar(&previewNoQR, "no-qr", false, "Do not print the QR code")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the current project locally",
	Long: `Start a static file server for the project and print the local and network
URLs, plus a QR code for opening the site on a phone. Unknown paths fall back
to index.html. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runPreview(ctx, app, cmd.OutOrStdout(), previewDir, previewPort, !previewNoQR)
	},
}

// runPreview blocks until ctx is cancelled.
func runPreview(ctx context.Context, e *env, w io.Writer, dir string, port int, qr bool) error {
	srv := &preview.Server{Dir: e.abs(dir), Port: port}
	err := srv.Serve(ctx, func(addr net.Addr) {
		if tcp, ok := addr.(*net.TCPAddr); ok {
			port = tcp.Port
		}
		urls := preview.DiscoverURLs(port)
		fmt.Fprintln(w, output.FormatCheckmark("Preview server running"))
		fmt.Fprintln(w, output.FormatField("Local", urls.Local))
		fmt.Fprintln(w, output.FormatField("Network", urls.Network))
		if qr {
			fmt.Fprintln(w, output.StyleDim.Render("\nScan to open on your phone:"))
			preview.WriteQR(w, urls.Network)
		}
		fmt.Fprintln(w, output.StyleDim.Render("Press Ctrl+C to stop"))
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nPreview server stopped.")
	return nil
}
