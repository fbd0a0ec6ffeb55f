package texmat

import "go.uber.org/zap"

// Resolve reduces classified files to at most one assignment per channel.
//
// Files are considered in the given order. Plain channels take their first
// file. Roughness prefers the first glossiness file (inverted) over the first
// roughness file. Bump prefers Normal over Height over Bump and keeps the detail.
// The returned set has a zero transform and no tint.
func Resolve(files []ClassifiedFile, opt *ResolveOptions) *Assignments {
	ropt := opt.normalize()
	out := NewAssignments(Transform{})

	var gloss, rough, bump *ClassifiedFile
	for i := range files {
		cf := &files[i]
		switch cf.Channel {
		case Unknown:
			continue

		case Roughness:
			if cf.Invert && gloss == nil {
				gloss = cf
			}
			if !cf.Invert && rough == nil {
				rough = cf
			}

		case Bump:
			if bump == nil || cf.Detail.rank() > bump.Detail.rank() {
				bump = cf
			}

		default:
			if _, ok := out.Slots[cf.Channel]; !ok {
				f := cf.File
				out.Slots[cf.Channel] = SlotAssignment{Channel: cf.Channel, File: &f}
			}
		}
	}

	switch {
	case gloss != nil:
		f := gloss.File
		out.Slots[Roughness] = SlotAssignment{Channel: Roughness, File: &f, Invert: true}
	case rough != nil:
		f := rough.File
		out.Slots[Roughness] = SlotAssignment{Channel: Roughness, File: &f}
	}

	if bump != nil {
		f := bump.File
		detail := bump.Detail
		if detail == DetailNone {
			detail = DetailBump
		}
		out.Slots[Bump] = SlotAssignment{Channel: Bump, File: &f, Detail: detail}
	}

	for _, ch := range Channels {
		s, ok := out.Get(ch)
		if !ok {
			ropt.Logger.Debug("slot unassigned", zap.Stringer("channel", ch))
			continue
		}
		ropt.Logger.Debug("slot resolved",
			zap.Stringer("channel", ch),
			zap.String("file", s.File.Name),
			zap.Bool("invert", s.Invert),
			zap.Stringer("detail", s.Detail))
	}

	return out
}
