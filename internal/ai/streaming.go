package ai

// StreamChunkSize is the number of characters each chunk on the streaming
// endpoint carries.
const StreamChunkSize = 20

// ChunkResponse splits a completion into fixed-size chunks for the streaming
// endpoint. The split is rune-based so multibyte characters never straddle a
// chunk boundary. The completed call happens up front; chunking simulates
// provider-side streaming.
func ChunkResponse(text string, size int) []string {
	if size <= 0 || text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
