// Package harvestclient provides the primary entry point for constructing a
// Harvest API client that implements the harvest.Client interface.
//
// The client discovers every URL it uses from the Link and Link-Template
// headers of its first response, so only the base URL needs to be known.
// Discovery happens lazily on the first call, or while constructing the client
// when Config.DiscoverOnInit is set.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/harvest-client/pkg/harvest"
//	  "github.com/fivetwenty-io/harvest-client/pkg/harvestclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just a base URL (no auth).
//	  cli, err := harvestclient.NewWithURL(ctx, "https://harvest.example.org/api/")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or authenticate; the token returned by the service is kept for
//	  // subsequent requests.
//	  cli, err = harvestclient.New(ctx, &harvest.Config{
//	    URL:      "https://harvest.example.org/api/",
//	    Username: "user",
//	    Password: "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  concepts, err := cli.Concepts().Queryable(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = concepts
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithURL, NewWithToken
// and NewWithPassword that wrap New with the appropriate configuration.
package harvestclient
