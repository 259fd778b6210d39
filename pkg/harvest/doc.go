// Package harvest provides types, interfaces, and errors for working with the
// Harvest data-access API.
//
// # Overview
//
// Harvest is a hypermedia API: apart from its base URL, every endpoint is
// discovered from the Link and Link-Template headers of the first response a
// client receives. The harvest package defines the domain types (Concept,
// Field, Context, View, Query, ...) and the interfaces for resource-oriented
// clients (ConceptsClient, QueriesClient, ...). A concrete implementation is
// provided by the harvestclient package, which wires configuration,
// transport, authentication and relation discovery.
//
// Getting a client
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
//	  cli, err := harvestclient.New(ctx, &harvest.Config{
//	    URL:      "https://harvest.example.org/api/",
//	    Username: "user",
//	    Password: "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  concepts, err := cli.Concepts().Queryable(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = concepts
//	}
//
// # Sessions
//
// The first call on a client performs the handshake; concurrent first calls
// share it. Close discards the token and the discovered relations, and the
// next call handshakes again. Config.MonitorInterval enables a background
// ping that closes the session as soon as the service reports it expired.
//
// # Errors
//
// Failures are reported with typed errors: ArgumentError, UnknownLinkError,
// CredentialsError, HTTPStatusError, TimeoutError and ConnectionError.
// Helpers such as IsNotFound, IsTimeout and IsConnection branch on the common
// cases. Nothing is retried.
package harvest
