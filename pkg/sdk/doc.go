// Package mealdex provides an embedded Go client for the mealdex recipe
// retrieval engine, backed by Postgres with the pgvector extension.
//
// The client wires the same storage and search stack the HTTP server uses,
// without the HTTP layer:
//
//	client, _ := mealdex.New(ctx,
//	    mealdex.WithPostgres("postgres://localhost/mealdex"),
//	    mealdex.WithOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), "text-embedding-3-small", 1536),
//	)
//	defer client.Close()
//
//	rec, _ := client.CreateRecipe(ctx, mealdex.Recipe{
//	    UserID: "u1",
//	    Title:  "Chicken Soup",
//	})
//
//	resp, _ := client.Search(ctx, mealdex.SearchRequest{
//	    UserID: "u1",
//	    Query:  "warming winter soup",
//	})
//
// Hybrid search combines semantic similarity with full-text matching; when
// the embedding provider is unavailable results fall back to full-text only
// and SearchResponse.SearchType reports "text".
package mealdex
