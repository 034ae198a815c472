package potprovider

// Package potprovider manages the lifecycle of the bgutil Proof-of-Origin
// token provider container and wires its base URL into yt-dlp extractor
// arguments. Every failure degrades to a warning: downloads proceed without
// PO tokens when Docker or the provider is unavailable.
//
// Reference: https://github.com/Brainicism/bgutil-ytdlp-pot-provider
