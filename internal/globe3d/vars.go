package globe3d

var (
	// Compile time checks that every output implements FrameSink
	_ FrameSink = (*GIFWriter)(nil)
	_ FrameSink = (*PNGSequenceWriter)(nil)
	_ FrameSink = (*RawWriter)(nil)
	_ FrameSink = multiSink(nil)
)
