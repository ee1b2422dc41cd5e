// Package clientcli provides a client library for a backuper archive
// server: uploading files, downloading them by name, querying per-file
// health and listing archived files.
//
// Every operation performs exactly one HTTP exchange over a transport
// session scoped to that operation. Failures carry a kind tag: caller
// faults (bad local input, or a server-declared "not found") versus
// remote faults (any other non-success status, with the raw response
// body as the message). Nothing is retried.
//
// # Basic Usage
//
//	cfg := &clientcli.Config{
//		ServerURL: "backups.example.net:44987",
//		Timeout:   10 * time.Second,
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Submit(ctx, "notes.txt", "./notes.txt")
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatSubmit(os.Stdout, result)
package clientcli
