package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/born-ml/revad/internal/tensor"
)

const (
	metadataKey = "__metadata__"
	dtypeF64    = "F64"
	f64Size     = 8
)

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes arrays to w in SafeTensors format.
//
// Tensors are written in alphabetical order by name.
func WriteSafeTensors(w io.Writer, arrays map[string]*tensor.Dense, metadata map[string]string) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if name == metadataKey {
			return &ValidationError{Type: "invalid_name", Tensor: name, Details: "reserved name"}
		}
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		d := arrays[name]
		size := int64(d.NumElements() * f64Size)

		shape := make([]int64, len(d.Shape()))
		for i, dim := range d.Shape() {
			shape[i] = int64(dim)
		}

		header[name] = SafeTensorHeader{
			DType:       dtypeF64,
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var buf [f64Size]byte
	for _, name := range names {
		for _, v := range arrays[name].Data() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("failed to write tensor %s: %w", name, err)
			}
		}
	}
	return bw.Flush()
}

// ReadSafeTensors reads arrays and metadata written by WriteSafeTensors.
func ReadSafeTensors(r io.Reader) (map[string]*tensor.Dense, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%d bytes: %w", headerSize, ErrHeaderTooLarge)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
		delete(raw, metadataKey)
	}

	metas := make([]TensorMeta, 0, len(raw))
	for name, entry := range raw {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		meta, err := parseEntry(name, entry)
		if err != nil {
			return nil, nil, err
		}
		metas = append(metas, meta)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}

	arrays := make(map[string]*tensor.Dense, len(metas))
	for _, meta := range metas {
		values := make([]float64, meta.Size/f64Size)
		chunk := data[meta.Offset : meta.Offset+meta.Size]
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk[i*f64Size:]))
		}
		d, err := tensor.FromSlice(values, tensor.Shape(meta.Shape))
		if err != nil {
			return nil, nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
		}
		arrays[meta.Name] = d
	}
	return arrays, metadata, nil
}

func parseEntry(name string, entry json.RawMessage) (TensorMeta, error) {
	var h SafeTensorHeader
	if err := json.Unmarshal(entry, &h); err != nil {
		return TensorMeta{}, fmt.Errorf("tensor %s: failed to parse header entry: %w", name, err)
	}
	if h.DType != dtypeF64 {
		return TensorMeta{}, fmt.Errorf("tensor %s: %q: %w", name, h.DType, ErrUnsupportedDType)
	}

	shape := make([]int, len(h.Shape))
	numel := int64(1)
	for i, dim := range h.Shape {
		if dim <= 0 {
			return TensorMeta{}, fmt.Errorf("tensor %s: invalid dimension %d", name, dim)
		}
		shape[i] = int(dim)
		numel *= dim
	}

	meta := TensorMeta{
		Name:   name,
		Shape:  shape,
		Offset: h.DataOffsets[0],
		Size:   h.DataOffsets[1] - h.DataOffsets[0],
	}
	if meta.Size >= 0 && meta.Size != numel*f64Size {
		return TensorMeta{}, fmt.Errorf("tensor %s: %d bytes for %d elements: %w", name, meta.Size, numel, ErrSizeMismatch)
	}
	return meta, nil
}

// SaveSafeTensors writes arrays to a SafeTensors file at path.
func SaveSafeTensors(path string, arrays map[string]*tensor.Dense, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteSafeTensors(file, arrays, metadata)
}

// LoadSafeTensors reads a SafeTensors file written by SaveSafeTensors.
func LoadSafeTensors(path string) (map[string]*tensor.Dense, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadSafeTensors(bufio.NewReader(file))
}
