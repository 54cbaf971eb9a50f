package globe3d

import "go.uber.org/multierr"

// FrameSink consumes rendered frames in order. Close finishes the output;
// no frames may be written after it.
type FrameSink interface {
	WriteFrame(f *Frame) error
	Close() error
}

// writeAll streams frames into sink and closes it.
func writeAll(sink FrameSink, frames []*Frame) error {
	for _, f := range frames {
		if err := sink.WriteFrame(f); err != nil {
			_ = sink.Close()
			return err
		}
	}
	return sink.Close()
}

// multiSink forwards every frame to each of its sinks.
type multiSink []FrameSink

func (m multiSink) WriteFrame(f *Frame) error {
	for _, s := range m {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (m multiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return multierr.Combine(errs...)
}
