package aml

// PkgLength decodes the ACPI PkgLength encoding (ACPI 6.x §20.2.4): a
// lead byte whose top two bits give the count of additional length
// bytes (0-3), and whose low four bits (or low six, if there are no
// additional bytes) hold the least-significant length bits.
func parsePkgLength(in Input) (int, Input, error) {
	lead, rest, err := takeOne(in)
	if err != nil {
		return 0, Input{}, err
	}

	extraBytes := int(lead >> 6)
	if extraBytes == 0 {
		return int(lead), rest, nil
	}

	if lead&0b0011_0000 != 0 {
		return 0, Input{}, newFailure(in.Span, "reserved PkgLength bits set")
	}

	bytes, rest, err := take(rest, extraBytes)
	if err != nil {
		return 0, Input{}, fail(err)
	}

	length := int(lead & 0x0f)
	for i, b := range bytes {
		length |= int(b) << uint(i*8+4)
	}

	return length, rest, nil
}

// pkg parses a PkgLength-prefixed sub-table: it decodes the length,
// carves out exactly that many bytes (length includes the PkgLength
// encoding itself) as a bounded Input, and returns it alongside the
// Input that continues after the package.
func pkg(in Input) (Input, Input, error) {
	start := in
	length, afterLen, err := parsePkgLength(in)
	if err != nil {
		return Input{}, Input{}, err
	}

	bytesRead := len(start.Bytes) - len(afterLen.Bytes)
	remaining := length - bytesRead
	if remaining < 0 {
		return Input{}, Input{}, newFailure(in.Span, "PkgLength shorter than its own encoding")
	}

	inner, outer, ok := afterLen.splitAtIndex(remaining)
	if !ok {
		return Input{}, Input{}, newFailure(afterLen.Span, "PkgLength runs past the end of the input")
	}

	return inner, outer, nil
}
