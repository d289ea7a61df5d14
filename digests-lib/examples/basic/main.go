// ABOUTME: Basic example showing article and discussion rendering with the library
// ABOUTME: Demonstrates minimal configuration and common use cases

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	digests "digests-reader-api/digests-lib"
)

func main() {
	client, err := digests.NewClient(
		digests.WithMaxConcurrency(3),
		digests.WithCacheTTL(10*time.Minute),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Println("=== Single Article ===")
	article, err := client.Article(ctx, "https://go.dev/blog/go1.23")
	if err != nil {
		log.Printf("Error rendering article: %v\n", err)
	} else {
		fmt.Println(article.Markdown)
	}

	fmt.Println("\n=== Batch ===")
	for _, a := range client.Articles(ctx, []string{
		"https://go.dev/blog/range-functions",
		"https://go.dev/blog/structured-logging",
	}) {
		if a.Err != nil {
			fmt.Printf("- %s: %v\n", a.URL, a.Err)
			continue
		}
		fmt.Printf("- %s (%d bytes)\n", a.Title, len(a.Markdown))
	}

	fmt.Println("\n=== Discussion ===")
	discussion, err := client.Discussion(ctx, "https://www.reddit.com/r/golang/comments/1d6p0lh/")
	switch {
	case err != nil:
		log.Printf("Error rendering discussion: %v\n", err)
	case discussion.Empty:
		fmt.Println("(no discussion)")
	default:
		fmt.Println(discussion.Markdown)
	}

	fmt.Println("\n=== Offline HTML ===")
	offline, err := client.ArticleFromHTML(`<article><h1>Hello</h1><p>Rendered locally.</p></article>`, "")
	if err != nil {
		log.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(offline.Markdown)
}
