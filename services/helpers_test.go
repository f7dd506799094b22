package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"nfl-stats/utils"
)

func newTestLogger() *utils.Logger {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf, utils.LevelDebug)
}

func newCapturingLogger() (*utils.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf, utils.LevelDebug), &buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const offense2023 = `,,,Tot Yds & TO,,,,,,Passing,,,,,,,Rushing,,,,,Penalties,,
Rk,Tm,G,PF,Yds,Ply,Y/P,TO,FL,1stD,Cmp,Att,Yds,TD,Int,NY/A,1stD,Att,Yds,TD,Y/A,1stD,Pen,Yds,1stPy
1,Dallas Cowboys,17,509,6507,1121,5.8,16,6,373,410,590,4516,37,10,7.2,239,444,1991,13,4.5,115,100,800,30
,Avg Team,17,365.3,5617,1049,5.4,22,8,320,350,550,3700,23,12,6.1,190,450,1900,13,4.2,110,105,870,32
,League Total,544,11689,179744,33568,5.4,704,256,10240,11200,17600,118400,736,384,6.1,6080,14400,60800,416,4.2,3520,3360,27840,1024
,Avg Tm/G,1,21.5,330.4,61.7,5.4,1.3,0.5,18.8,20.6,32.4,217.6,1.4,0.7,6.1,11.2,26.5,111.8,0.8,4.2,6.5,6.2,51.2,1.9
`

const defense2023 = `,,,Tot Yds & TO,,,Passing,,Rushing,
Rk,Tm,G,PA,Yds,Ply,TO,Yds,TD,Yds,TD
1,Dallas Cowboys,17,315,5113,1050,28,3300,20,1813,12
,Avg Team,17,365.3,5617,1049,22,3700,23,1900,13
`
