package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type rankingEntryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type getStatsResponse struct {
	TotalTasks          int                    `json:"totalTasks"`
	CompletedTasks      int                    `json:"completedTasks"`
	TotalDelayed        int                    `json:"totalDelayed"`
	TotalExcuses        int                    `json:"totalExcuses"`
	AverageExcuseLength int                    `json:"averageExcuseLength"`
	LongestStreak       int                    `json:"longestStreak"`
	MostDelayed         *rankingEntryResponse  `json:"mostDelayed,omitempty"`
	Ranking             []rankingEntryResponse `json:"ranking"`
}

func (h *handlerImpl) HandleGetStats(c *gin.Context) {
	stats, err := h.stats.TaskStats(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := getStatsResponse{
		TotalTasks:          stats.TotalTasks,
		CompletedTasks:      stats.CompletedTasks,
		TotalDelayed:        stats.TotalDelayed,
		TotalExcuses:        stats.TotalExcuses,
		AverageExcuseLength: stats.AverageExcuseLength,
		LongestStreak:       stats.LongestStreak,
		Ranking:             make([]rankingEntryResponse, len(stats.Ranking)),
	}
	for i, entry := range stats.Ranking {
		response.Ranking[i] = rankingEntryResponse(entry)
	}
	if stats.MostDelayed != nil {
		most := rankingEntryResponse(*stats.MostDelayed)
		response.MostDelayed = &most
	}

	c.JSON(http.StatusOK, response)
}

type getExcuseStatsResponse struct {
	TotalExcuses  int                 `json:"totalExcuses"`
	AverageLength int                 `json:"averageLength"`
	Longest       *getExcuseResponse  `json:"longestExcuse,omitempty"`
	Recent        []getExcuseResponse `json:"recentExcuses"`
}

func (h *handlerImpl) HandleGetExcuseStats(c *gin.Context) {
	stats, err := h.stats.ExcuseStats(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := getExcuseStatsResponse{
		TotalExcuses:  stats.TotalExcuses,
		AverageLength: stats.AverageLength,
		Recent:        make([]getExcuseResponse, len(stats.Recent)),
	}
	for i := range stats.Recent {
		response.Recent[i] = newGetExcuseResponse(&stats.Recent[i])
	}
	if stats.Longest != nil {
		longest := newGetExcuseResponse(stats.Longest)
		response.Longest = &longest
	}

	c.JSON(http.StatusOK, response)
}
