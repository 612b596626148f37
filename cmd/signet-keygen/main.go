package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalvas/signet/keygen"
)

func main() {
	var (
		kind    string
		rsaBits int
		keyID   string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "signet-keygen",
		Short: "Generate a signing key pair for request authentication",
		Long: `signet-keygen generates an asymmetric key pair and writes it as a pair
of PEM files: <key-id>.key holding the PKCS#8 private key and
<key-id>.pub holding the PKIX public key.

The private key file is written with mode 0600. Distribute only the
.pub file to verifying services.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := keygen.Generate(keygen.Options{
				Kind:    keygen.Kind(kind),
				RSABits: rsaBits,
				KeyID:   keyID,
			})
			if err != nil {
				return err
			}

			keyPath, pubPath, err := pair.WriteFiles(outDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "key id:      %s\n", pair.KeyID)
			fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\n", keyPath)
			fmt.Fprintf(cmd.OutOrStdout(), "public key:  %s\n", pubPath)

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(keygen.KindRSA), "key kind: rsa, ec-p256 or ec-p521")
	cmd.Flags().IntVar(&rsaBits, "bits", 0, "RSA modulus size in bits (rsa kind only, minimum 2048)")
	cmd.Flags().StringVar(&keyID, "key-id", "", "key identifier (random UUID when empty)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the key files to")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
