// Package textvec provides a Go client for the textvec HTTP API.
//
// textvec turns small text collections into feature matrices (TF-IDF,
// Bag-of-Words), projects them into a latent space (LSA, SVD embeddings)
// and annotates single texts (tokens, stems, lemmas, POS tags, entities).
//
//	client, _ := textvec.New("http://localhost:8000", textvec.WithAPIKey(key))
//	m, _ := client.Vectorize().TFIDF(ctx, texts, textvec.WithMaxFeatures(50))
//	fmt.Println(m.Shape, m.Vocabulary[0])
//
//	tags, _ := client.Annotate().POSTag(ctx, "The cat sat on the mat")
package textvec
