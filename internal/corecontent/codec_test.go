package corecontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]Entry{
		{
			{Text: "데이터 마이닝의 정의", SourceType: "text"},
		},
		{
			{Text: "영상 요약 내용", SourceType: "youtube_url"},
			{Text: "R기초 핵심 정리", SourceType: "text"},
		},
		{
			{Text: "여러 줄로 된\n핵심 정보\n입니다", SourceType: "text"},
			{Text: "두 번째", SourceType: "text"},
			{Text: "세 번째", SourceType: "youtube_url"},
		},
	}

	for _, entries := range cases {
		blob := Encode(entries)
		decoded := Decode(blob, "")
		require.Equal(t, entries, decoded)
		assert.Equal(t, blob, Encode(decoded), "encode(decode(x)) must equal x")
	}
}

func TestDecodeLegacyUntaggedBlob(t *testing.T) {
	blob := "구분자 없이 저장된 예전 핵심 정보"

	entries := Decode(blob, "")
	require.Len(t, entries, 1)
	assert.Equal(t, blob, entries[0].Text)
	assert.Equal(t, "text", entries[0].SourceType)
}

func TestDecodeLegacyUsesDefaultSource(t *testing.T) {
	entries := Decode("예전 영상 내용", "youtube_url")
	require.Len(t, entries, 1)
	assert.Equal(t, "youtube_url", entries[0].SourceType)
}

func TestDecodeEmptyBlob(t *testing.T) {
	assert.Nil(t, Decode("", ""))
	assert.Nil(t, Decode("   \n  ", ""))
}

func TestDecodeMixedLegacyAndTagged(t *testing.T) {
	blob := "[source:text]\n새로 저장된 내용" + Delimiter + "예전 내용"

	entries := Decode(blob, "")
	require.Len(t, entries, 2)
	assert.Equal(t, "새로 저장된 내용", entries[0].Text)
	assert.Equal(t, "text", entries[0].SourceType)
	assert.Equal(t, "예전 내용", entries[1].Text)
	assert.Equal(t, "text", entries[1].SourceType)
}

func TestPrependPutsNewestFirst(t *testing.T) {
	blob := Encode([]Entry{{Text: "기존 내용", SourceType: "text"}})

	updated := Prepend(blob, "새 내용", "youtube_url")

	entries := Decode(updated, "")
	require.Len(t, entries, 2)
	assert.Equal(t, "새 내용", entries[0].Text)
	assert.Equal(t, "youtube_url", entries[0].SourceType)
	assert.Equal(t, "기존 내용", entries[1].Text)
}

func TestPrependToEmptyBlob(t *testing.T) {
	updated := Prepend("", "첫 내용", "text")

	entries := Decode(updated, "")
	require.Len(t, entries, 1)
	assert.Equal(t, "첫 내용", entries[0].Text)
}

func TestPrependTagsLegacyContent(t *testing.T) {
	updated := Prepend("예전 내용", "새 내용", "text")

	entries := Decode(updated, "")
	require.Len(t, entries, 2)
	assert.Equal(t, "새 내용", entries[0].Text)
	assert.Equal(t, "예전 내용", entries[1].Text)
}
